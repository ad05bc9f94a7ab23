package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/extract"
	"github.com/fwojciec/storelens/goquery"
	storelenshttp "github.com/fwojciec/storelens/http"
	"github.com/fwojciec/storelens/readability"
	"github.com/fwojciec/storelens/shopify"
	storeslog "github.com/fwojciec/storelens/slog"
	"github.com/fwojciec/storelens/sqlite"
	"github.com/fwojciec/storelens/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// Values already in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher, if set, replaces the HTTP fetcher. Used for end-to-end testing.
	Fetcher storelens.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("storelens"),
		kong.Description("Extract brand insights from Shopify storefronts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'storelens --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.LogLevel, cli.Verbose)
	deps.Logger = logger

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STORELENS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Insights = storeslog.NewLoggingInsightsService(sqlite.NewInsightsService(m.DB), logger)

	if strings.HasPrefix(kongCtx.Command(), "extract") {
		fetcher := m.Fetcher
		if fetcher == nil {
			hf := storelenshttp.NewFetcher(
				storelenshttp.WithRateLimit(cli.RPS),
				storelenshttp.WithRetryLog(func(format string, args ...any) {
					logger.Debug(fmt.Sprintf(format, args...))
				}),
			)
			defer hf.Close()
			fetcher = hf
		}

		engine := extract.NewEngine(
			storeslog.NewLoggingFetcher(fetcher, logger),
			goquery.NewParser(),
			shopify.NewCatalogParser(),
			extract.LongestContent{readability.NewExtractor(), trafilatura.NewExtractor()},
		)
		engine.Timeout = cli.Timeout
		engine.Concurrency = cli.Concurrency
		engine.Progress = func(ev extract.ProgressEvent) {
			switch ev.Type {
			case extract.ProgressCompleted:
				logger.Debug("category done", "category", ev.Category, "completed", ev.Completed, "total", ev.Total)
			case extract.ProgressFailed:
				logger.Debug("category failed", "category", ev.Category, "completed", ev.Completed, "total", ev.Total, "err", ev.Error)
			}
		}
		deps.Extractor = storeslog.NewLoggingInsightsExtractor(engine, logger)
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w. verbose forces debug level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storelens.db"
	}
	dir := filepath.Join(home, ".storelens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "storelens.db")
}
