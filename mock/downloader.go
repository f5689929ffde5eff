package mock

import (
	"context"

	"github.com/fmaia/pdfgrab"
)

var _ pdfgrab.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of pdfgrab.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string, suggestedName string) (*pdfgrab.DownloadResult, error)
}

func (d *Downloader) Download(ctx context.Context, url string, suggestedName string) (*pdfgrab.DownloadResult, error) {
	return d.DownloadFn(ctx, url, suggestedName)
}
