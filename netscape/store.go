// Package netscape loads cookies from a Netscape-format cookies.txt file,
// the export format produced by common browser cookie extensions.
package netscape

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/fmaia/pdfgrab"
)

// httpOnlyPrefix marks entries some exporters write for HttpOnly cookies.
// The prefix is stripped and the entry is kept.
const httpOnlyPrefix = "#HttpOnly_"

// Ensure Store implements pdfgrab.CookieStore at compile time.
var _ pdfgrab.CookieStore = (*Store)(nil)

// Store reads cookie records from a cookies.txt file.
type Store struct {
	path string
}

// NewStore creates a Store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load parses the store. Malformed lines are skipped rather than failing
// the whole load; only an unreadable file is an error, and callers are
// expected to log it and continue with no cookies.
func (s *Store) Load(ctx context.Context) ([]pdfgrab.CookieRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, pdfgrab.Errorf(pdfgrab.ENOTFOUND, "cookie store %q: %v", s.path, err)
	}
	defer f.Close()

	var records []pdfgrab.CookieRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		line := scanner.Text()
		line = strings.TrimPrefix(line, httpOnlyPrefix)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// domain, include-subdomains, path, secure, expiry, name, value
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}
		records = append(records, pdfgrab.CookieRecord{
			Domain: fields[0],
			Path:   fields[2],
			Secure: strings.EqualFold(fields[3], "TRUE"),
			Name:   fields[5],
			Value:  fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return records, pdfgrab.Errorf(pdfgrab.EINVALID, "cookie store %q: %v", s.path, err)
	}
	return records, nil
}
