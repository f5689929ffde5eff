package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fmaia/pdfgrab"
	"github.com/fmaia/pdfgrab/crawl"
	"github.com/fmaia/pdfgrab/fs"
	"github.com/fmaia/pdfgrab/goquery"
	grabhttp "github.com/fmaia/pdfgrab/http"
	"github.com/fmaia/pdfgrab/netscape"
	"github.com/fmaia/pdfgrab/rod"
	grabslog "github.com/fmaia/pdfgrab/slog"
	"github.com/joho/godotenv"
)

// downloadRPS paces artifact downloads per domain.
const downloadRPS = 1.0

func main() {
	// Local overrides for PDFGRAB_* variables; absence is fine.
	_ = godotenv.Load(".env.local", ".env")

	m := NewMain()
	if err := m.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewBrowser constructs the browser for the rendered flows. Tests
	// inject a mock; the default launches a rod-driven browser with
	// downloads routed into dir.
	NewBrowser func(dir string, logger *slog.Logger) (pdfgrab.Browser, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		NewBrowser: func(dir string, logger *slog.Logger) (pdfgrab.Browser, error) {
			browser, err := rod.NewBrowser(rod.WithDownloadDir(dir))
			if err != nil {
				return nil, err
			}
			return rod.NewLoggingBrowser(browser, logger), nil
		},
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pdfgrab"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pdfgrab --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	session, err := grabhttp.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create HTTP session: %w", err)
	}
	deps.Session = session
	deps.Cookies = netscape.NewStore(cli.Cookies)
	deps.Extractor = grabslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)
	deps.Downloads = grabslog.NewLoggingDownloader(&crawl.Downloader{
		Session: session,
		Writer:  fs.NewWriter(cli.Dir),
	}, deps.Logger)
	deps.Limiter = crawl.NewDomainLimiter(downloadRPS)
	deps.Waits = crawl.DefaultWaits()

	// Wired for every command, global-flags-first invocations included;
	// the browser launches only when a rendered flow calls the factory.
	dir := cli.Dir
	logger := deps.Logger
	deps.NewBrowser = func() (pdfgrab.Browser, error) {
		browser, err := m.NewBrowser(dir, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Brave, Chromium, or Chrome must be installed")
			return nil, err
		}
		return browser, nil
	}

	return kongCtx.Run(deps)
}
