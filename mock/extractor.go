package mock

import "github.com/fmaia/pdfgrab"

var _ pdfgrab.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of pdfgrab.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(html string, baseURL string, originalOnly bool) ([]string, error)
}

func (e *LinkExtractor) Extract(html string, baseURL string, originalOnly bool) ([]string, error) {
	return e.ExtractFn(html, baseURL, originalOnly)
}
