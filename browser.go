package pdfgrab

import (
	"context"
	"time"
)

// Browser drives a real rendering backend for pages that build their
// content with JavaScript. Exactly one Browser lives for the duration of a
// rendered-flow invocation and must be closed on every exit path.
type Browser interface {
	// Navigate loads the URL in the browser's page.
	Navigate(ctx context.Context, url string) error

	// HTML returns the current rendered HTML of the page.
	HTML(ctx context.Context) (string, error)

	// SetCookies injects records into the browser, stripping leading
	// domain dots. Per-cookie failures are swallowed; the browser may
	// reject cookies that don't match the currently-loaded domain, which
	// is expected and non-fatal. Returns the number injected.
	SetCookies(ctx context.Context, records []CookieRecord) int

	// Cookies returns the browser's live cookies.
	Cookies(ctx context.Context) ([]CookieRecord, error)

	// AcceptDialog accepts a native alert/confirm dialog if one appears
	// within wait. Returns false when no dialog was present; absence must
	// not stall the flow beyond the bounded wait.
	AcceptDialog(ctx context.Context, wait time.Duration) bool

	// ElementsByText returns elements whose visible text contains text.
	ElementsByText(ctx context.Context, text string) ([]Element, error)

	// Close releases the browser. Safe to call multiple times.
	Close() error
}

// Element is an interactive element located on a rendered page.
type Element interface {
	// Text returns the element's visible text.
	Text() string

	// Href returns the element's own href attribute, or "" when absent.
	Href() string

	// AnchorHref returns the href of the nearest enclosing anchor,
	// falling back to the element's own href. Returns "" when neither
	// resolves.
	AnchorHref() string

	// Visible reports whether the element is displayed and interactable.
	Visible() bool

	// Click simulates a user click. Side effects (such as an in-browser
	// download) are the point.
	Click(ctx context.Context) error
}
