// Package slog provides logging decorators for pdfgrab domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fmaia/pdfgrab"
)

// Ensure LoggingDownloader implements pdfgrab.Downloader.
var _ pdfgrab.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   pdfgrab.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next pdfgrab.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, url string, suggestedName string) (result *pdfgrab.DownloadResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"path", result.Path,
				"bytes", result.Size,
				"attempts", result.Attempts,
				"hash", result.Hash,
			)
		}
		d.logger.Info("download", attrs...)
	}(time.Now())
	return d.next.Download(ctx, url, suggestedName)
}
