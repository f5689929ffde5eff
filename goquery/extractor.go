// Package goquery implements document link extraction over rendered HTML
// using CSS selectors.
package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fmaia/pdfgrab"
)

// Keyword sets for the primary tier. The sites in scope label their
// download controls in Portuguese ("Baixar Livro", "Baixar em versão
// original"), so the primary tier keys on that wording.
var (
	downloadKeyword = "baixar"
	bookKeywords    = []string{"livro", "eletrônico", "eletronico"}
	originalPhrases = []string{"versão original", "versao original"}
)

// Salvage-tier markers.
var (
	dataAttrs        = []string{"data-href", "data-url", "data-download"}
	dataAttrKeywords = []string{"pdf", "download", "livro"}
	pathKeywords     = []string{"/download", "/material", "livro", "ebook", "pdf"}
)

// Ensure Extractor implements pdfgrab.LinkExtractor at compile time.
var _ pdfgrab.LinkExtractor = (*Extractor)(nil)

// Extractor discovers candidate document URLs with a tiered heuristic
// cascade. The primary tier matches anchors labeled as book downloads and,
// when it yields anything, is authoritative. The salvage tiers run only
// when the primary tier is empty: direct .pdf references first, then
// data-attribute and path-keyword guesses.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns absolute, deduplicated candidate URLs
// resolved against baseURL. With originalOnly set, only primary-tier links
// labeled as the original-version variant qualify and the salvage tiers
// are skipped.
func (e *Extractor) Extract(html string, baseURL string, originalOnly bool) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pdfgrab.Errorf(pdfgrab.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pdfgrab.Errorf(pdfgrab.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var candidates []string

	add := func(href string) {
		href = strings.TrimSpace(href)
		if !usableHref(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		candidates = append(candidates, resolved)
	}

	// Primary tier: anchors worded as book downloads.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if !strings.Contains(text, downloadKeyword) || !containsAny(text, bookKeywords) {
			return
		}
		if originalOnly && !containsAny(text, originalPhrases) {
			return
		}
		href, _ := sel.Attr("href")
		add(href)
	})

	// A non-empty primary tier is authoritative.
	if len(candidates) > 0 || originalOnly {
		sort.Strings(candidates)
		return candidates, nil
	}

	// Direct-extension tier.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.Contains(strings.ToLower(href), ".pdf") {
			add(href)
		}
	})
	doc.Find("embed, object, iframe").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("data")
		if !ok || src == "" {
			src, _ = sel.Attr("src")
		}
		if strings.Contains(strings.ToLower(src), ".pdf") {
			add(src)
		}
	})

	// Data-attribute and path-keyword tier.
	for _, attr := range dataAttrs {
		doc.Find("[" + attr + "]").Each(func(_ int, sel *goquery.Selection) {
			val, _ := sel.Attr(attr)
			if containsAny(strings.ToLower(val), dataAttrKeywords) {
				add(val)
			}
		})
	}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if containsAny(strings.ToLower(href), pathKeywords) {
			add(href)
		}
	})

	sort.Strings(candidates)
	return candidates, nil
}

// usableHref rejects empty, fragment-only, and javascript: pseudo-URLs.
func usableHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	return !strings.Contains(strings.ToLower(href), "javascript")
}

// resolveURL resolves a relative href against the base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
