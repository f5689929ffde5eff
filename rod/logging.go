package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fmaia/pdfgrab"
)

// Ensure LoggingBrowser implements pdfgrab.Browser.
var _ pdfgrab.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with debug logging.
type LoggingBrowser struct {
	next   pdfgrab.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next pdfgrab.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped browser.
func (b *LoggingBrowser) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		b.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Navigate(ctx, url)
}

// HTML delegates to the wrapped browser and logs the snapshot size.
func (b *LoggingBrowser) HTML(ctx context.Context) (html string, err error) {
	defer func() {
		b.logger.Debug("html snapshot", "bytes", len(html), "err", err)
	}()
	return b.next.HTML(ctx)
}

// SetCookies delegates and logs how many records were injected.
func (b *LoggingBrowser) SetCookies(ctx context.Context, records []pdfgrab.CookieRecord) int {
	injected := b.next.SetCookies(ctx, records)
	b.logger.Info("cookies injected", "injected", injected, "total", len(records))
	return injected
}

// Cookies delegates to the wrapped browser.
func (b *LoggingBrowser) Cookies(ctx context.Context) ([]pdfgrab.CookieRecord, error) {
	return b.next.Cookies(ctx)
}

// AcceptDialog delegates and logs dismissed dialogs.
func (b *LoggingBrowser) AcceptDialog(ctx context.Context, wait time.Duration) bool {
	accepted := b.next.AcceptDialog(ctx, wait)
	if accepted {
		b.logger.Debug("dialog accepted")
	}
	return accepted
}

// ElementsByText delegates to the wrapped browser and logs match counts.
func (b *LoggingBrowser) ElementsByText(ctx context.Context, text string) (els []pdfgrab.Element, err error) {
	defer func() {
		b.logger.Debug("elements by text", "text", text, "matches", len(els), "err", err)
	}()
	return b.next.ElementsByText(ctx, text)
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}
