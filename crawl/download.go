package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/fs"
)

// DefaultMaxAttempts is the fetch attempt ceiling per artifact.
const DefaultMaxAttempts = 3

// DefaultRetryDelays returns the fixed backoff between fetch attempts.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{5 * time.Second, 5 * time.Second}
}

// Ensure Downloader implements pdfgrab.Downloader at compile time.
var _ pdfgrab.Downloader = (*Downloader)(nil)

// Downloader retrieves one document URL into a uniquely named file with
// bounded retry. It is the unit of idempotence: the destination name is
// resolved once per call with collision suffixes, existing files are never
// overwritten, and a failed attempt never leaves a partial file behind.
type Downloader struct {
	Session pdfgrab.Session
	Writer  *fs.Writer

	// MaxAttempts is the fetch attempt ceiling.
	// Defaults to DefaultMaxAttempts.
	MaxAttempts int

	// RetryDelays is the backoff schedule between attempts. The last
	// entry repeats when attempts outnumber entries. Defaults to
	// DefaultRetryDelays(); tests inject zero delays.
	RetryDelays []time.Duration
}

// Download streams url to disk. suggestedName, when non-empty, bypasses
// URL-derived naming but still passes through sanitization and extension
// enforcement. Transport errors and non-2xx statuses are retried
// identically up to the attempt ceiling.
func (d *Downloader) Download(ctx context.Context, url string, suggestedName string) (*pdfgrab.DownloadResult, error) {
	name := fs.SafeName(url, 0)
	if suggestedName != "" {
		name = fs.EnsurePDF(fs.Sanitize(suggestedName))
	}
	dest := fs.UniquePath(d.Writer.Dir(), name)

	maxAttempts := d.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := d.Session.Stream(ctx, url)
		if err == nil {
			size, hash, werr := d.Writer.Write(dest, body)
			body.Close()
			if werr == nil {
				return &pdfgrab.DownloadResult{
					Path:     dest,
					Attempts: attempt,
					Size:     size,
					Hash:     hash,
				}, nil
			}
			err = werr
		}
		lastErr = err

		if attempt < maxAttempts {
			delay := time.Duration(0)
			if len(delays) > 0 {
				delay = delays[min(attempt-1, len(delays)-1)]
			}
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("download %s after %d attempts: %w", url, maxAttempts, lastErr)
}
