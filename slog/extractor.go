package slog

import (
	"log/slog"

	"github.com/fmaia/pdfgrab"
)

// Ensure LoggingExtractor implements pdfgrab.LinkExtractor.
var _ pdfgrab.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with debug logging.
type LoggingExtractor struct {
	next   pdfgrab.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pdfgrab.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the candidate count.
func (e *LoggingExtractor) Extract(html string, baseURL string, originalOnly bool) (candidates []string, err error) {
	defer func() {
		e.logger.Debug("extract",
			"base", baseURL,
			"original_only", originalOnly,
			"candidates", len(candidates),
			"err", err,
		)
	}()
	return e.next.Extract(html, baseURL, originalOnly)
}
