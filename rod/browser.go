// Package rod implements the pdfgrab.Browser capability using Chrome
// DevTools Protocol automation via go-rod.
package rod

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fmaia/pdfgrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// brandedBins are Chromium-family binaries tried before rod's own lookup,
// in priority order.
var brandedBins = []string{"brave-browser", "brave"}

// Ensure Browser implements pdfgrab.Browser at compile time.
var _ pdfgrab.Browser = (*Browser)(nil)

// Browser drives a single headless Chromium-family page. One Browser
// instance lives for the duration of a rendered-flow invocation; Close
// must be called on every exit path.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	dialogs  chan *proto.PageJavascriptDialogOpening
	closed   atomic.Bool
}

// Option configures a Browser.
type Option func(*config)

type config struct {
	bin         string
	downloadDir string
}

// WithBin forces a specific browser binary instead of the default
// branded-then-fallback lookup.
func WithBin(path string) Option {
	return func(c *config) {
		c.bin = path
	}
}

// WithDownloadDir routes in-browser downloads (triggered by simulated
// clicks) into dir.
func WithDownloadDir(dir string) Option {
	return func(c *config) {
		c.downloadDir = dir
	}
}

// NewBrowser launches a headless browser and opens a blank page.
// Returns EUNAVAILABLE when no Chromium-family backend can be started.
func NewBrowser(opts ...Option) (*Browser, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	l := launcher.New().
		Headless(true).
		Leakless(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("window-size", "1920,1080").
		Set("lang", "pt-BR")

	bin := cfg.bin
	if bin == "" {
		bin = brandedBin()
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, pdfgrab.Errorf(pdfgrab.EUNAVAILABLE,
			"launching browser: %v (install Brave, Chromium, or Chrome)", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, pdfgrab.Errorf(pdfgrab.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	b := &Browser{
		browser:  browser,
		launcher: l,
		page:     page,
		dialogs:  make(chan *proto.PageJavascriptDialogOpening, 8),
	}

	if cfg.downloadDir != "" {
		if abs, err := filepath.Abs(cfg.downloadDir); err == nil {
			_ = proto.BrowserSetDownloadBehavior{
				Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
				DownloadPath: abs,
			}.Call(browser)
		}
	}

	// Dialog events are buffered so AcceptDialog can poll with a bounded
	// wait instead of blocking on the event stream.
	go page.EachEvent(func(e *proto.PageJavascriptDialogOpening) {
		select {
		case b.dialogs <- e:
		default:
		}
	})()

	return b, nil
}

// brandedBin returns the first branded Chromium-family binary found on
// PATH, or "" to let rod's launcher resolve a browser itself.
func brandedBin() string {
	for _, name := range brandedBins {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// Navigate loads the URL and waits for the load event.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	p := b.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	// A dialog opening during load blocks the load event; treat that as
	// loaded enough and let the caller dismiss the dialog.
	_ = p.WaitLoad()
	return nil
}

// HTML returns the current rendered HTML.
func (b *Browser) HTML(ctx context.Context) (string, error) {
	return b.page.Context(ctx).HTML()
}

// SetCookies injects records into the browser one at a time, stripping
// leading domain dots. One bad cookie must not abort the rest: per-cookie
// failures are swallowed and the injected count is returned.
func (b *Browser) SetCookies(ctx context.Context, records []pdfgrab.CookieRecord) int {
	page := b.page.Context(ctx)
	injected := 0
	for _, rec := range records {
		param := &proto.NetworkCookieParam{
			Name:   rec.Name,
			Value:  rec.Value,
			Domain: rec.BrowserDomain(),
		}
		if rec.Path != "" {
			param.Path = rec.Path
		}
		if rec.Secure {
			param.Secure = true
		}
		if err := page.SetCookies([]*proto.NetworkCookieParam{param}); err == nil {
			injected++
		}
	}
	return injected
}

// Cookies returns the browser's live cookies as records.
func (b *Browser) Cookies(ctx context.Context) ([]pdfgrab.CookieRecord, error) {
	cookies, err := b.browser.GetCookies()
	if err != nil {
		return nil, err
	}
	records := make([]pdfgrab.CookieRecord, 0, len(cookies))
	for _, c := range cookies {
		records = append(records, pdfgrab.CookieRecord{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
			Secure: c.Secure,
		})
	}
	return records, nil
}

// AcceptDialog accepts a native dialog if one appears within wait.
func (b *Browser) AcceptDialog(ctx context.Context, wait time.Duration) bool {
	select {
	case <-b.dialogs:
		_ = proto.PageHandleJavaScriptDialog{Accept: true}.Call(b.page)
		return true
	case <-time.After(wait):
		return false
	case <-ctx.Done():
		return false
	}
}

// ElementsByText returns anchors and buttons whose visible text contains
// text.
func (b *Browser) ElementsByText(ctx context.Context, text string) ([]pdfgrab.Element, error) {
	xpath := fmt.Sprintf(`//a[contains(., "%s")] | //button[contains(., "%s")]`, text, text)
	els, err := b.page.Context(ctx).ElementsX(xpath)
	if err != nil {
		return nil, err
	}
	out := make([]pdfgrab.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out, nil
}

// Close releases the browser and its launcher. Safe to call multiple
// times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

// Ensure element implements pdfgrab.Element at compile time.
var _ pdfgrab.Element = (*element)(nil)

// element wraps a rod element handle.
type element struct {
	el *rod.Element
}

func (e *element) Text() string {
	text, err := e.el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *element) Href() string {
	return hrefOf(e.el)
}

func (e *element) AnchorHref() string {
	if anchor, err := e.el.ElementX("./ancestor-or-self::a"); err == nil {
		if href := hrefOf(anchor); href != "" {
			return href
		}
	}
	return e.Href()
}

// hrefOf reads an element's href. The DOM property carries the
// browser-resolved absolute URL; the raw attribute, which may be
// relative, is only a fallback.
func hrefOf(el *rod.Element) string {
	if prop, err := el.Property("href"); err == nil {
		if href := prop.Str(); href != "" {
			return href
		}
	}
	attr, err := el.Attribute("href")
	if err != nil || attr == nil {
		return ""
	}
	return *attr
}

func (e *element) Visible() bool {
	visible, err := e.el.Visible()
	return err == nil && visible
}

func (e *element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}
