// Package crawl orchestrates document discovery and retrieval. It wires
// the session, browser, extractor, and downloader capabilities into the
// three retrieval flows: static single-page, browser-rendered, and
// multi-lesson course crawling.
package crawl

import (
	"context"
	"time"

	"github.com/fmaia/pdfgrab"
)

// EventType identifies a progress event.
type EventType int

// Progress event types emitted by the crawlers.
const (
	// EventCandidates reports how many candidate links a page yielded.
	EventCandidates EventType = iota

	// EventDownloaded reports one artifact written to disk.
	EventDownloaded

	// EventFailed reports one artifact that could not be retrieved.
	// Failures never abort sibling artifacts.
	EventFailed

	// EventClicked reports a simulated click on a download control.
	EventClicked

	// EventLesson reports the start of one lesson's retrieval.
	EventLesson

	// EventWarning reports a non-fatal condition, such as an unreadable
	// cookie store.
	EventWarning
)

// Event reports crawl progress.
type Event struct {
	Type    EventType
	URL     string
	Path    string
	Ordinal int
	Total   int
	Err     error
}

// EventFunc is a callback for reporting crawl progress.
type EventFunc func(Event)

// emit calls fn if it is non-nil.
func emit(fn EventFunc, e Event) {
	if fn != nil {
		fn(e)
	}
}

// hashes spots identical artifact bodies retrieved under different URLs
// within one crawl, keyed by the streamed body's xxhash.
type hashes map[uint64]string

// duplicate records the result and returns the path of a previously
// retrieved artifact with the same body, if any.
func (h hashes) duplicate(result *pdfgrab.DownloadResult) (string, bool) {
	if prior, ok := h[result.Hash]; ok {
		return prior, true
	}
	h[result.Hash] = result.Path
	return "", false
}

// sleep waits for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
