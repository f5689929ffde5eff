package pdfgrab

import (
	"context"
	"strings"
)

// CookieRecord is a backend-neutral cookie. Records are read once from a
// persisted store at session start and may later be re-derived from a live
// browser so that cookies set during login flows reach the HTTP session.
type CookieRecord struct {
	Name   string
	Value  string
	Domain string
	Path   string
	Secure bool
}

// BrowserDomain returns the cookie domain without a leading dot. Browser
// cookie APIs reject leading-dot domains in some implementations.
func (c CookieRecord) BrowserDomain() string {
	return strings.TrimPrefix(c.Domain, ".")
}

// CookieStore loads persisted cookie records.
type CookieStore interface {
	// Load reads all records from the store. A missing or corrupt store
	// returns an error; callers are expected to log it and continue with
	// an empty record set rather than abort.
	Load(ctx context.Context) ([]CookieRecord, error)
}
