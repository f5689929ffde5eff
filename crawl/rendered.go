package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fmaia/pdfgrab"
)

// downloadButtonText is the visible-text pattern of the download controls
// searched for when no static candidate links are found.
const downloadButtonText = "Baixar Livro"

// textPrefixLen bounds the visible-text prefix used to deduplicate
// clickable controls, so the same logical button isn't clicked twice.
const textPrefixLen = 50

// RenderedSite retrieves documents from a page that requires real
// rendering: it drives a browser, dismisses transient dialogs, and falls
// back to simulating clicks on download controls when the rendered HTML
// exposes no static links.
type RenderedSite struct {
	Browser   pdfgrab.Browser
	Session   pdfgrab.Session
	Extractor pdfgrab.LinkExtractor
	Downloads pdfgrab.Downloader

	// Cookies, when set, seeds the browser with a persisted login session.
	Cookies pdfgrab.CookieStore

	Waits WaitPolicy

	// Progress receives crawl events. May be nil.
	Progress EventFunc
}

// Run renders the page, collects candidate document URLs, and downloads
// them over HTTP with a session refreshed from the live browser cookies.
// Clicked controls trigger in-browser downloads and count toward the
// returned total. The browser is released before the HTTP downloads begin,
// on every exit path.
func (r *RenderedSite) Run(ctx context.Context, targetURL string) (int, error) {
	candidates, clicks, err := r.collect(ctx, targetURL)
	if err != nil {
		return 0, err
	}
	// Clicked controls are found documents too; a zero total is reported
	// only when the click fallback also came up empty.
	emit(r.Progress, Event{Type: EventCandidates, URL: targetURL, Total: len(candidates) + clicks})

	count := clicks
	seen := make(hashes)
	for _, candidate := range candidates {
		result, err := r.Downloads.Download(ctx, candidate, "")
		if err != nil {
			emit(r.Progress, Event{Type: EventFailed, URL: candidate, Err: err})
			continue
		}
		emit(r.Progress, Event{Type: EventDownloaded, URL: candidate, Path: result.Path})
		if prior, dup := seen.duplicate(result); dup {
			emit(r.Progress, Event{Type: EventWarning, URL: candidate,
				Err: fmt.Errorf("same content as %s", prior)})
		}
		count++
	}
	return count, nil
}

// collect drives the browser phase. The browser is closed on every return
// path, and the HTTP session is refreshed from its live cookies first so
// follow-up downloads carry any cookies set during rendering.
func (r *RenderedSite) collect(ctx context.Context, targetURL string) (candidates []string, clicks int, err error) {
	defer func() {
		if records, cerr := r.Browser.Cookies(ctx); cerr == nil {
			r.Session.SetCookies(records)
		}
		if cerr := r.Browser.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	r.seedCookies(ctx, targetURL)

	if err := r.Browser.Navigate(ctx, targetURL); err != nil {
		return nil, 0, err
	}
	if err := sleep(ctx, r.Waits.PageSettle); err != nil {
		return nil, 0, err
	}
	dismissDialogs(ctx, r.Browser, r.Waits)

	html, err := r.Browser.HTML(ctx)
	if err != nil {
		return nil, 0, err
	}
	candidates, err = r.Extractor.Extract(html, targetURL, false)
	if err != nil {
		return nil, 0, err
	}
	if len(candidates) > 0 {
		return candidates, 0, nil
	}

	// No static links: fall back to the page's download controls. Controls
	// carrying a direct href become candidates; the rest get clicked so the
	// browser performs the download itself.
	elements, err := r.Browser.ElementsByText(ctx, downloadButtonText)
	if err != nil {
		emit(r.Progress, Event{Type: EventWarning, URL: targetURL, Err: err})
		return nil, 0, nil
	}
	seen := make(map[string]bool)
	for _, el := range elements {
		href := el.Href()
		switch {
		case usableAbsoluteHref(href):
			if !seen[href] {
				seen[href] = true
				candidates = append(candidates, href)
			}
		case el.Visible():
			prefix := textPrefix(el.Text())
			if seen[prefix] {
				continue
			}
			if err := el.Click(ctx); err != nil {
				continue
			}
			seen[prefix] = true
			clicks++
			emit(r.Progress, Event{Type: EventClicked, URL: targetURL})
			_ = sleep(ctx, r.Waits.PostClick)
		}
	}
	return candidates, clicks, nil
}

// seedCookies loads the persisted store into the browser. Injection needs
// an already-loaded same-domain context, so the bare domain root is
// navigated to first. Load failures are reported as warnings; the flow
// continues without a session.
func (r *RenderedSite) seedCookies(ctx context.Context, targetURL string) {
	if r.Cookies == nil {
		return
	}
	records, err := r.Cookies.Load(ctx)
	if err != nil {
		emit(r.Progress, Event{Type: EventWarning, URL: targetURL, Err: err})
		return
	}
	if len(records) == 0 {
		return
	}
	if root := domainRoot(targetURL); root != "" {
		if err := r.Browser.Navigate(ctx, root); err != nil {
			emit(r.Progress, Event{Type: EventWarning, URL: root, Err: err})
			return
		}
	}
	r.Browser.SetCookies(ctx, records)
}

// domainRoot returns "https://<host>" for the URL, or "" when the URL has
// no host.
func domainRoot(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return "https://" + u.Host
}

// usableAbsoluteHref accepts only absolute http(s) hrefs that aren't
// javascript: pseudo-URLs.
func usableAbsoluteHref(href string) bool {
	return strings.HasPrefix(href, "http") &&
		!strings.Contains(strings.ToLower(href), "javascript")
}

// textPrefix truncates visible text to the deduplication prefix length.
func textPrefix(text string) string {
	if len(text) > textPrefixLen {
		return text[:textPrefixLen]
	}
	return text
}
