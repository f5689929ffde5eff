package pdfgrab

import (
	"context"
	"io"
)

// Session performs HTTP retrieval over a shared cookie jar and fixed
// identity headers. A Session is owned by the crawler that created it and
// is read and written only by the currently-active retrieval step;
// retrieval is sequential, never concurrent.
type Session interface {
	// Fetch retrieves a page and returns its HTML. Non-2xx responses are
	// reported as errors.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Stream opens a streaming GET for a document body. The caller must
	// close the returned reader. Non-2xx responses are reported as errors,
	// uniformly with transport failures, since both are retryable.
	Stream(ctx context.Context, url string) (io.ReadCloser, error)

	// SetCookies merges records into the session's cookie jar.
	SetCookies(records []CookieRecord)
}
