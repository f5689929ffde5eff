package main

import (
	"fmt"

	"github.com/fmaia/pdfgrab/crawl"
)

// Run executes the render command: browser-driven retrieval, one browser
// instance per target URL.
func (c *RenderCmd) Run(deps *Dependencies) error {
	total := 0
	for _, url := range c.URLs {
		fmt.Fprintf(deps.Stdout, "\nAnalisando: %s\n", url)

		browser, err := deps.NewBrowser()
		if err != nil {
			return fmt.Errorf("failed to start browser: %w", err)
		}

		crawler := &crawl.RenderedSite{
			Browser:   browser,
			Session:   deps.Session,
			Extractor: deps.Extractor,
			Downloads: deps.Downloads,
			Cookies:   deps.Cookies,
			Waits:     deps.Waits,
			Progress:  progressPrinter(deps),
		}
		count, err := crawler.Run(deps.Ctx, url)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  [Erro] %s: %v\n", url, err)
		}
		total += count
	}

	fmt.Fprintf(deps.Stdout, "\nTotal: %d PDF(s) baixado(s)\n", total)
	return nil
}
