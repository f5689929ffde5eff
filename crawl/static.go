package crawl

import (
	"context"
	"fmt"

	"github.com/fmaia/pdfgrab"
)

// StaticSite retrieves documents from a single page over plain HTTP. It is
// suitable for pages that render their download links server-side.
type StaticSite struct {
	Session   pdfgrab.Session
	Extractor pdfgrab.LinkExtractor
	Downloads pdfgrab.Downloader

	// Limiter, when set, paces downloads per domain.
	Limiter *DomainLimiter

	// Progress receives crawl events. May be nil.
	Progress EventFunc
}

// Run fetches the page once, extracts candidates, and downloads each one.
// A page fetch error fails the whole call with zero results; there is no
// retry at this layer. Per-artifact download failures are reported and
// skipped, never aborting the remaining candidates.
func (s *StaticSite) Run(ctx context.Context, url string) (int, error) {
	html, err := s.Session.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	candidates, err := s.Extractor.Extract(html, url, false)
	if err != nil {
		return 0, err
	}
	emit(s.Progress, Event{Type: EventCandidates, URL: url, Total: len(candidates)})
	if len(candidates) == 0 {
		return 0, nil
	}

	count := 0
	seen := make(hashes)
	for _, candidate := range candidates {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, candidate); err != nil {
				return count, err
			}
		}
		result, err := s.Downloads.Download(ctx, candidate, "")
		if err != nil {
			emit(s.Progress, Event{Type: EventFailed, URL: candidate, Err: err})
			continue
		}
		emit(s.Progress, Event{Type: EventDownloaded, URL: candidate, Path: result.Path})
		if prior, dup := seen.duplicate(result); dup {
			emit(s.Progress, Event{Type: EventWarning, URL: candidate,
				Err: fmt.Errorf("same content as %s", prior)})
		}
		count++
	}
	return count, nil
}
