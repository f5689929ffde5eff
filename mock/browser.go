// Package mock provides hand-written mocks for pdfgrab domain interfaces.
package mock

import (
	"context"
	"time"

	"github.com/fmaia/pdfgrab"
)

var _ pdfgrab.Browser = (*Browser)(nil)

// Browser is a mock implementation of pdfgrab.Browser. Unset function
// fields return zero values so tests only stub what they assert on.
type Browser struct {
	NavigateFn       func(ctx context.Context, url string) error
	HTMLFn           func(ctx context.Context) (string, error)
	SetCookiesFn     func(ctx context.Context, records []pdfgrab.CookieRecord) int
	CookiesFn        func(ctx context.Context) ([]pdfgrab.CookieRecord, error)
	AcceptDialogFn   func(ctx context.Context, wait time.Duration) bool
	ElementsByTextFn func(ctx context.Context, text string) ([]pdfgrab.Element, error)
	CloseFn          func() error

	// CloseCount tracks Close calls for release-on-every-path assertions.
	CloseCount int
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	if b.NavigateFn == nil {
		return nil
	}
	return b.NavigateFn(ctx, url)
}

func (b *Browser) HTML(ctx context.Context) (string, error) {
	if b.HTMLFn == nil {
		return "", nil
	}
	return b.HTMLFn(ctx)
}

func (b *Browser) SetCookies(ctx context.Context, records []pdfgrab.CookieRecord) int {
	if b.SetCookiesFn == nil {
		return len(records)
	}
	return b.SetCookiesFn(ctx, records)
}

func (b *Browser) Cookies(ctx context.Context) ([]pdfgrab.CookieRecord, error) {
	if b.CookiesFn == nil {
		return nil, nil
	}
	return b.CookiesFn(ctx)
}

func (b *Browser) AcceptDialog(ctx context.Context, wait time.Duration) bool {
	if b.AcceptDialogFn == nil {
		return false
	}
	return b.AcceptDialogFn(ctx, wait)
}

func (b *Browser) ElementsByText(ctx context.Context, text string) ([]pdfgrab.Element, error) {
	if b.ElementsByTextFn == nil {
		return nil, nil
	}
	return b.ElementsByTextFn(ctx, text)
}

func (b *Browser) Close() error {
	b.CloseCount++
	if b.CloseFn == nil {
		return nil
	}
	return b.CloseFn()
}

var _ pdfgrab.Element = (*Element)(nil)

// Element is a mock implementation of pdfgrab.Element backed by plain
// fields.
type Element struct {
	TextValue       string
	HrefValue       string
	AnchorHrefValue string
	VisibleValue    bool
	ClickFn         func(ctx context.Context) error
}

func (e *Element) Text() string { return e.TextValue }

func (e *Element) Href() string { return e.HrefValue }

func (e *Element) AnchorHref() string {
	if e.AnchorHrefValue != "" {
		return e.AnchorHrefValue
	}
	return e.HrefValue
}

func (e *Element) Visible() bool { return e.VisibleValue }

func (e *Element) Click(ctx context.Context) error {
	if e.ClickFn == nil {
		return nil
	}
	return e.ClickFn(ctx)
}
