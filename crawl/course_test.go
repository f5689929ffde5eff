package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/crawl"
	"github.com/fmaia/pdfgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const courseURL = "https://escola.test/app/dashboard/cursos/12"

func courseIndexHTML(lessonIDs ...int) string {
	html := "<html>"
	for _, id := range lessonIDs {
		html += fmt.Sprintf(`<a href="https://escola.test/app/dashboard/cursos/12/aulas/%d">Aula</a>`, id)
	}
	return html + "</html>"
}

func TestCourse_Run(t *testing.T) {
	t.Parallel()

	t.Run("assigns ordinals by lexicographic lesson order", func(t *testing.T) {
		t.Parallel()
		index := courseIndexHTML(20, 3, 100)
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
		}
		type download struct{ url, name string }
		var downloads []download
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					assert.True(t, originalOnly)
					return []string{baseURL + "/original.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					downloads = append(downloads, download{url, suggestedName})
					return &pdfgrab.DownloadResult{Path: "pdfs/" + suggestedName}, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, 3, count)
		// String order, not numeric: aulas/100 sorts before aulas/20.
		assert.Equal(t, []download{
			{courseURL + "/aulas/100/original.pdf", "Aula_01.pdf"},
			{courseURL + "/aulas/20/original.pdf", "Aula_02.pdf"},
			{courseURL + "/aulas/3/original.pdf", "Aula_03.pdf"},
		}, downloads)
		assert.Equal(t, 1, browser.CloseCount)
	})

	t.Run("retrieves a single lesson by ordinal", func(t *testing.T) {
		t.Parallel()
		index := courseIndexHTML(1, 2, 3)
		var visited []string
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
			NavigateFn: func(ctx context.Context, url string) error {
				visited = append(visited, url)
				return nil
			},
		}
		var names []string
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return []string{baseURL + "/original.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					names = append(names, suggestedName)
					return &pdfgrab.DownloadResult{}, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 2)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		// Ordinal 2 keeps its position-derived name even when fetched alone.
		assert.Equal(t, []string{"Aula_02.pdf"}, names)
		assert.Equal(t, []string{courseURL, courseURL + "/aulas/2"}, visited)
	})

	t.Run("rejects an out-of-range ordinal before any retrieval", func(t *testing.T) {
		t.Parallel()
		index := courseIndexHTML(1, 2, 3)
		var visited []string
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
			NavigateFn: func(ctx context.Context, url string) error {
				visited = append(visited, url)
				return nil
			},
		}
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					t.Fatal("unexpected download")
					return nil, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 5)

		require.Error(t, err)
		assert.Equal(t, pdfgrab.EINVALID, pdfgrab.ErrorCode(err))
		assert.Zero(t, count)
		// Only the course index itself was visited, never a lesson.
		assert.Equal(t, []string{courseURL}, visited)
		assert.Equal(t, 1, browser.CloseCount)
	})

	t.Run("discovers lessons from relative anchor hrefs", func(t *testing.T) {
		t.Parallel()
		index := `<html>
			<a href="/app/dashboard/cursos/12/aulas/3">Aula 3</a>
			<a href="/app/dashboard/cursos/12/aulas/4">Aula 4</a>
		</html>`
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
		}
		var names []string
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return []string{baseURL + "/original.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					names = append(names, suggestedName)
					return &pdfgrab.DownloadResult{}, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"Aula_01.pdf", "Aula_02.pdf"}, names)
	})

	t.Run("ignores lesson URLs outside anchors", func(t *testing.T) {
		t.Parallel()
		index := `<html>
			<script>var next = "https://escola.test/app/dashboard/cursos/12/aulas/99";</script>
			` + courseIndexHTML(1) + `
		</html>`
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
		}
		var lessons []string
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return nil, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					return &pdfgrab.DownloadResult{}, nil
				},
			},
			Progress: func(e crawl.Event) {
				if e.Type == crawl.EventLesson {
					lessons = append(lessons, e.URL)
				}
			},
		}

		_, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{courseURL + "/aulas/1"}, lessons)
	})

	t.Run("ignores lesson URLs from other hosts", func(t *testing.T) {
		t.Parallel()
		index := courseIndexHTML(1) +
			`<a href="https://outra.test/app/dashboard/cursos/9/aulas/9">fora</a>`
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
		}
		var lessons []string
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return nil, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					return &pdfgrab.DownloadResult{}, nil
				},
			},
			Progress: func(e crawl.Event) {
				if e.Type == crawl.EventLesson {
					lessons = append(lessons, e.URL)
				}
			},
		}

		_, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{courseURL + "/aulas/1"}, lessons)
	})

	t.Run("falls back to the original-version control's anchor", func(t *testing.T) {
		t.Parallel()
		index := courseIndexHTML(1)
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
			ElementsByTextFn: func(ctx context.Context, text string) ([]pdfgrab.Element, error) {
				if text != "versão original" {
					return nil, nil
				}
				return []pdfgrab.Element{
					&mock.Element{TextValue: "Baixar em versão original", AnchorHrefValue: "https://escola.test/files/original.pdf"},
				}, nil
			},
		}
		var downloaded []string
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return nil, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					downloaded = append(downloaded, url)
					return &pdfgrab.DownloadResult{}, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, []string{"https://escola.test/files/original.pdf"}, downloaded)
	})

	t.Run("a failed lesson never aborts the remaining lessons", func(t *testing.T) {
		t.Parallel()
		index := courseIndexHTML(1, 2)
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return index, nil },
			NavigateFn: func(ctx context.Context, url string) error {
				if url == courseURL+"/aulas/1" {
					return errors.New("net::ERR_TIMED_OUT")
				}
				return nil
			},
		}
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return []string{baseURL + "/original.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					return &pdfgrab.DownloadResult{}, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("retries discovery while the index is still rendering", func(t *testing.T) {
		t.Parallel()
		htmlCalls := 0
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) {
				htmlCalls++
				if htmlCalls == 1 {
					return "<html>carregando...</html>", nil
				}
				return courseIndexHTML(1), nil
			},
		}
		course := &crawl.Course{
			Browser: browser,
			Session: &mock.Session{},
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, baseURL string, originalOnly bool) ([]string, error) {
					return []string{baseURL + "/original.pdf"}, nil
				},
			},
			Downloads: &mock.Downloader{
				DownloadFn: func(ctx context.Context, url, suggestedName string) (*pdfgrab.DownloadResult, error) {
					return &pdfgrab.DownloadResult{}, nil
				},
			},
		}

		count, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.GreaterOrEqual(t, htmlCalls, 2)
	})

	t.Run("an empty index is not an error", func(t *testing.T) {
		t.Parallel()
		browser := &mock.Browser{
			HTMLFn: func(ctx context.Context) (string, error) { return "<html></html>", nil },
		}
		course := &crawl.Course{Browser: browser, Session: &mock.Session{}}

		count, err := course.Run(context.Background(), courseURL, 0)

		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Equal(t, 1, browser.CloseCount)
	})
}
