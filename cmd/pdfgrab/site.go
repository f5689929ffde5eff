package main

import (
	"fmt"

	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/crawl"
)

// Run executes the site command: static single-page retrieval over the
// cookie-seeded HTTP session.
func (c *SiteCmd) Run(deps *Dependencies) error {
	records, err := deps.Cookies.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "  [Aviso] %s\n", pdfgrab.ErrorMessage(err))
	} else if len(records) > 0 {
		deps.Session.SetCookies(records)
		fmt.Fprintln(deps.Stdout, "  [Sessão logada] Cookies carregados")
	}

	crawler := &crawl.StaticSite{
		Session:   deps.Session,
		Extractor: deps.Extractor,
		Downloads: deps.Downloads,
		Limiter:   deps.Limiter,
		Progress:  progressPrinter(deps),
	}

	total := 0
	for _, url := range c.URLs {
		fmt.Fprintf(deps.Stdout, "\nAnalisando: %s\n", url)
		count, err := crawler.Run(deps.Ctx, url)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  [Erro] %s: %v\n", url, err)
		}
		total += count
	}

	fmt.Fprintf(deps.Stdout, "\nTotal: %d PDF(s) baixado(s)\n", total)
	return nil
}
