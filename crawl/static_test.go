package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/crawl"
	"github.com/fmaia/pdfgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSite_Run(t *testing.T) {
	t.Parallel()

	t.Run("downloads every extracted candidate", func(t *testing.T) {
		t.Parallel()
		var downloaded []string
		site := &crawl.StaticSite{
			Session: &mock.Session{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					assert.False(t, originalOnly)
					return []string{"https://site.test/a.pdf", "https://site.test/b.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					assert.Empty(t, suggestedName)
					downloaded = append(downloaded, url)
					return &pdfgrab.DownloadResult{Path: "pdfs/x.pdf"}, nil
				},
			},
		}

		count, err := site.Run(context.Background(), "https://site.test/page")

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"https://site.test/a.pdf", "https://site.test/b.pdf"}, downloaded)
	})

	t.Run("a page fetch error fails the whole call", func(t *testing.T) {
		t.Parallel()
		site := &crawl.StaticSite{
			Session: &mock.Session{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", errors.New("HTTP 500")
				},
			},
		}

		count, err := site.Run(context.Background(), "https://site.test/page")

		require.Error(t, err)
		assert.Zero(t, count)
	})

	t.Run("a failed download skips to the next candidate", func(t *testing.T) {
		t.Parallel()
		var events []crawl.Event
		site := &crawl.StaticSite{
			Session: &mock.Session{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return []string{"https://site.test/bad.pdf", "https://site.test/good.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					if url == "https://site.test/bad.pdf" {
						return nil, errors.New("HTTP 404")
					}
					return &pdfgrab.DownloadResult{Path: "pdfs/good.pdf"}, nil
				},
			},
			Progress: func(e crawl.Event) { events = append(events, e) },
		}

		count, err := site.Run(context.Background(), "https://site.test/page")

		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var failed, done int
		for _, e := range events {
			switch e.Type {
			case crawl.EventFailed:
				failed++
			case crawl.EventDownloaded:
				done++
			}
		}
		assert.Equal(t, 1, failed)
		assert.Equal(t, 1, done)
	})

	t.Run("warns when two URLs serve the same body", func(t *testing.T) {
		t.Parallel()
		var warnings []crawl.Event
		site := &crawl.StaticSite{
			Session: &mock.Session{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return []string{"https://site.test/a.pdf", "https://site.test/espelho.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					return &pdfgrab.DownloadResult{Path: "pdfs/" + url[len("https://site.test/"):], Hash: 0xfeed}, nil
				},
			},
			Progress: func(e crawl.Event) {
				if e.Type == crawl.EventWarning {
					warnings = append(warnings, e)
				}
			},
		}

		count, err := site.Run(context.Background(), "https://site.test/page")

		require.NoError(t, err)
		// Both files are kept; the duplicate body is only reported.
		assert.Equal(t, 2, count)
		require.Len(t, warnings, 1)
		assert.Equal(t, "https://site.test/espelho.pdf", warnings[0].URL)
		assert.ErrorContains(t, warnings[0].Err, "pdfs/a.pdf")
	})

	t.Run("no candidates means zero downloads", func(t *testing.T) {
		t.Parallel()
		site := &crawl.StaticSite{
			Session: &mock.Session{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
			},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return nil, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					t.Fatal("unexpected download")
					return nil, nil
				},
			},
		}

		count, err := site.Run(context.Background(), "https://site.test/page")

		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
