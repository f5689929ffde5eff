package pdfgrab

// LinkExtractor discovers candidate document URLs in rendered HTML using a
// tiered heuristic cascade. The first tier keys on the site's intentional
// "download button" wording and, when it matches, is authoritative; later
// tiers are best-effort salvage for pages that don't use that convention.
type LinkExtractor interface {
	// Extract returns absolute, deduplicated candidate URLs resolved
	// against baseURL. When originalOnly is set, only links labeled as the
	// "original version" variant qualify and the salvage tiers are
	// skipped.
	Extract(html string, baseURL string, originalOnly bool) ([]string, error)
}
