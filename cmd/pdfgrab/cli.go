package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/crawl"
)

// Dependencies holds the services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Session   pdfgrab.Session
	Extractor pdfgrab.LinkExtractor
	Downloads pdfgrab.Downloader
	Cookies   pdfgrab.CookieStore
	Limiter   *crawl.DomainLimiter
	Waits     crawl.WaitPolicy

	// NewBrowser launches a browser for the rendered flows. Wired only for
	// the render and course commands.
	NewBrowser func() (pdfgrab.Browser, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Site   SiteCmd   `cmd:"" help:"Download PDFs from static pages over HTTP"`
	Render RenderCmd `cmd:"" help:"Download PDFs from browser-rendered pages"`
	Course CourseCmd `cmd:"" help:"Download one PDF per lesson from a course"`

	Dir     string `short:"d" default:"pdfs" help:"Destination directory"`
	Cookies string `env:"PDFGRAB_COOKIES" default:"cookies.txt" help:"Netscape cookies.txt path"`
	Debug   bool   `help:"Enable debug logging"`
}

// SiteCmd is the "site" subcommand.
type SiteCmd struct {
	URLs []string `arg:"" help:"Page URLs to scan"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	URLs []string `arg:"" help:"Page URLs to render and scan"`
}

// CourseCmd is the "course" subcommand.
type CourseCmd struct {
	URL  string `arg:"" help:"Course index URL"`
	Aula int    `short:"a" help:"Download only this lesson (1-based ordinal)"`
}
