package mock

import (
	"context"
	"io"

	"github.com/fmaia/pdfgrab"
)

var _ pdfgrab.Session = (*Session)(nil)

// Session is a mock implementation of pdfgrab.Session.
type Session struct {
	FetchFn      func(ctx context.Context, url string) (string, error)
	StreamFn     func(ctx context.Context, url string) (io.ReadCloser, error)
	SetCookiesFn func(records []pdfgrab.CookieRecord)
}

func (s *Session) Fetch(ctx context.Context, url string) (string, error) {
	return s.FetchFn(ctx, url)
}

func (s *Session) Stream(ctx context.Context, url string) (io.ReadCloser, error) {
	return s.StreamFn(ctx, url)
}

func (s *Session) SetCookies(records []pdfgrab.CookieRecord) {
	if s.SetCookiesFn != nil {
		s.SetCookiesFn(records)
	}
}
