package main

import (
	"fmt"

	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/crawl"
)

// Run executes the course command: per-lesson retrieval of the
// original-version document.
func (c *CourseCmd) Run(deps *Dependencies) error {
	if c.Aula > 0 {
		fmt.Fprintf(deps.Stdout, "  [Modo curso] Apenas aula %d\n", c.Aula)
	} else {
		fmt.Fprintln(deps.Stdout, "  [Modo curso] Baixando de todas as aulas")
	}

	browser, err := deps.NewBrowser()
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	crawler := &crawl.Course{
		Browser:   browser,
		Session:   deps.Session,
		Extractor: deps.Extractor,
		Downloads: deps.Downloads,
		Cookies:   deps.Cookies,
		Waits:     deps.Waits,
		Progress:  progressPrinter(deps),
	}

	total, err := crawler.Run(deps.Ctx, c.URL, c.Aula)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "  [Erro] %s\n", pdfgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nTotal: %d PDF(s) baixado(s)\n", total)
	return nil
}

// progressPrinter renders crawl events as console lines.
func progressPrinter(deps *Dependencies) crawl.EventFunc {
	return func(e crawl.Event) {
		switch e.Type {
		case crawl.EventCandidates:
			if e.Total == 0 {
				fmt.Fprintln(deps.Stdout, "  Nenhum PDF encontrado.")
			} else {
				fmt.Fprintf(deps.Stdout, "  Encontrados %d link(s)\n", e.Total)
			}
		case crawl.EventLesson:
			fmt.Fprintf(deps.Stdout, "\n  Aula %02d\n", e.Ordinal)
		case crawl.EventDownloaded:
			fmt.Fprintf(deps.Stdout, "  [OK] Baixado: %s\n", e.Path)
		case crawl.EventClicked:
			fmt.Fprintln(deps.Stdout, "  [Clique] Download via navegador")
		case crawl.EventFailed:
			if e.Err != nil {
				fmt.Fprintf(deps.Stderr, "  [Erro] %s: %v\n", e.URL, e.Err)
			} else {
				fmt.Fprintf(deps.Stderr, "  [Erro] Nenhum PDF na aula %02d\n", e.Ordinal)
			}
		case crawl.EventWarning:
			fmt.Fprintf(deps.Stderr, "  [Aviso] %v\n", e.Err)
		}
	}
}
