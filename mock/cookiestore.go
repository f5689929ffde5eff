package mock

import (
	"context"

	"github.com/fmaia/pdfgrab"
)

var _ pdfgrab.CookieStore = (*CookieStore)(nil)

// CookieStore is a mock implementation of pdfgrab.CookieStore.
type CookieStore struct {
	LoadFn func(ctx context.Context) ([]pdfgrab.CookieRecord, error)
}

func (s *CookieStore) Load(ctx context.Context) ([]pdfgrab.CookieRecord, error) {
	if s.LoadFn == nil {
		return nil, nil
	}
	return s.LoadFn(ctx)
}
