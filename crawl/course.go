package crawl

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fmaia/pdfgrab"
)

// lessonPatterns are the two known lesson-URL path shapes. Exactly these
// two are in scope; they are deliberately not configurable.
var lessonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://[^/"']+/[^/"']+/cursos/\d+/aulas/\d+`),
	regexp.MustCompile(`https://[^/"']+/app/dashboard/cursos/\d+/aulas/\d+`),
}

// originalPhrases label the document variant acceptable in course mode.
var originalPhrases = []string{"versão original", "versao original"}

// discoveryPasses bounds lesson discovery retries. Transient rendering
// delay is the expected reason to retry, not a hard failure.
const discoveryPasses = 3

// Course crawls a course index page, enumerates its lesson pages, and
// retrieves at most one document per lesson: the "original version"
// variant, named by the lesson's stable ordinal.
type Course struct {
	Browser   pdfgrab.Browser
	Session   pdfgrab.Session
	Extractor pdfgrab.LinkExtractor
	Downloads pdfgrab.Downloader

	// Cookies, when set, seeds the browser with a persisted login session.
	Cookies pdfgrab.CookieStore

	Waits WaitPolicy

	// Progress receives crawl events. May be nil.
	Progress EventFunc
}

// Run crawls the course at courseURL. With onlyLesson > 0 a single lesson
// is retrieved, addressed by its 1-based ordinal in the lexicographically
// sorted lesson list; an out-of-range ordinal fails with EINVALID before
// any retrieval. The browser is released on every exit path. Returns the
// number of documents retrieved.
func (c *Course) Run(ctx context.Context, courseURL string, onlyLesson int) (count int, err error) {
	defer func() {
		if cerr := c.Browser.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	c.seedCookies(ctx, courseURL)

	if err := c.Browser.Navigate(ctx, courseURL); err != nil {
		return 0, err
	}
	if err := sleep(ctx, c.Waits.CourseSettle); err != nil {
		return 0, err
	}
	dismissDialogs(ctx, c.Browser, c.Waits)

	lessons, err := c.discoverLessons(ctx, courseURL)
	if err != nil {
		return 0, err
	}
	if len(lessons) == 0 {
		emit(c.Progress, Event{Type: EventCandidates, URL: courseURL, Total: 0})
		return 0, nil
	}

	// Lexicographic order assigns the stable lesson ordinals. This is a
	// string sort on purpose: .../aulas/100 numbers before .../aulas/20.
	sort.Strings(lessons)

	firstOrdinal := 1
	if onlyLesson > 0 {
		if onlyLesson > len(lessons) {
			return 0, pdfgrab.Errorf(pdfgrab.EINVALID,
				"aula %d inexistente (1 a %d)", onlyLesson, len(lessons))
		}
		lessons = lessons[onlyLesson-1 : onlyLesson]
		firstOrdinal = onlyLesson
	}
	emit(c.Progress, Event{Type: EventCandidates, URL: courseURL, Total: len(lessons)})

	seen := make(hashes)
	for i, lessonURL := range lessons {
		ordinal := firstOrdinal + i
		emit(c.Progress, Event{Type: EventLesson, URL: lessonURL, Ordinal: ordinal})
		if c.fetchLesson(ctx, lessonURL, ordinal, seen) {
			count++
		}
		if err := ctx.Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// discoverLessons scans the rendered course index's anchors for lesson
// URLs, retrying while the page is still rendering. Hrefs are resolved
// against the course URL before matching, so relative lesson links
// qualify. The result is deduplicated but unordered.
func (c *Course) discoverLessons(ctx context.Context, courseURL string) ([]string, error) {
	base, err := url.Parse(courseURL)
	if err != nil || base.Host == "" {
		return nil, pdfgrab.Errorf(pdfgrab.EINVALID, "invalid course URL %q", courseURL)
	}

	seen := make(map[string]bool)
	for pass := 0; pass < discoveryPasses; pass++ {
		if pass > 0 {
			c.Browser.AcceptDialog(ctx, c.Waits.DialogWait)
			if err := sleep(ctx, c.Waits.DiscoveryRetry); err != nil {
				return nil, err
			}
		}
		html, err := c.Browser.HTML(ctx)
		if err != nil {
			continue
		}
		for _, link := range anchorHrefs(html, base) {
			for _, pattern := range lessonPatterns {
				match := pattern.FindString(link)
				if match == "" || !strings.Contains(match, base.Host) {
					continue
				}
				seen[match] = true
			}
		}
		if len(seen) > 0 {
			break
		}
	}

	lessons := make([]string, 0, len(seen))
	for lesson := range seen {
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

// anchorHrefs returns the page's anchor hrefs resolved to absolute URLs
// against base. Unparseable HTML or hrefs contribute nothing.
func anchorHrefs(html string, base *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links
}

// fetchLesson retrieves the lesson's original-version document. A lesson
// with no resolvable candidate, or whose download fails, contributes
// nothing and never aborts the remaining lessons.
func (c *Course) fetchLesson(ctx context.Context, lessonURL string, ordinal int, seen hashes) bool {
	if err := c.Browser.Navigate(ctx, lessonURL); err != nil {
		emit(c.Progress, Event{Type: EventFailed, URL: lessonURL, Ordinal: ordinal, Err: err})
		return false
	}
	if err := sleep(ctx, c.Waits.LessonSettle); err != nil {
		return false
	}
	dismissDialogs(ctx, c.Browser, c.Waits)

	var candidates []string
	if html, err := c.Browser.HTML(ctx); err == nil {
		candidates, _ = c.Extractor.Extract(html, lessonURL, true)
	}
	if len(candidates) == 0 {
		if href := c.findOriginalHref(ctx); href != "" {
			candidates = []string{href}
		}
	}

	// Cookies set while rendering the lesson must reach the HTTP session
	// before the download.
	if records, err := c.Browser.Cookies(ctx); err == nil {
		c.Session.SetCookies(records)
	}

	if len(candidates) == 0 {
		emit(c.Progress, Event{Type: EventFailed, URL: lessonURL, Ordinal: ordinal})
		return false
	}

	name := fmt.Sprintf("Aula_%02d.pdf", ordinal)
	result, err := c.Downloads.Download(ctx, candidates[0], name)
	if err != nil {
		emit(c.Progress, Event{Type: EventFailed, URL: candidates[0], Ordinal: ordinal, Err: err})
		return false
	}
	emit(c.Progress, Event{Type: EventDownloaded, URL: candidates[0], Path: result.Path, Ordinal: ordinal})
	if prior, dup := seen.duplicate(result); dup {
		emit(c.Progress, Event{Type: EventWarning, URL: candidates[0], Ordinal: ordinal,
			Err: fmt.Errorf("same content as %s", prior)})
	}
	return true
}

// findOriginalHref locates a control labeled as the original version and
// resolves the nearest enclosing anchor's href.
func (c *Course) findOriginalHref(ctx context.Context) string {
	for _, phrase := range originalPhrases {
		elements, err := c.Browser.ElementsByText(ctx, phrase)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if href := el.AnchorHref(); usableAbsoluteHref(href) {
				return href
			}
		}
	}
	return ""
}

// seedCookies mirrors RenderedSite cookie seeding for the course flow.
func (c *Course) seedCookies(ctx context.Context, courseURL string) {
	if c.Cookies == nil {
		return
	}
	records, err := c.Cookies.Load(ctx)
	if err != nil {
		emit(c.Progress, Event{Type: EventWarning, URL: courseURL, Err: err})
		return
	}
	if len(records) == 0 {
		return
	}
	if root := domainRoot(courseURL); root != "" {
		if err := c.Browser.Navigate(ctx, root); err != nil {
			emit(c.Progress, Event{Type: EventWarning, URL: root, Err: err})
			return
		}
	}
	c.Browser.SetCookies(ctx, records)
}
