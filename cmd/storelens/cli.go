package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/storelens"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Insights  storelens.InsightsService
	Extractor storelens.InsightsExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string        `env:"STORELENS_DB" help:"Database path (default ~/.storelens/storelens.db)"`
	Timeout     time.Duration `env:"STORELENS_TIMEOUT" default:"60s" help:"Deadline for one extraction"`
	Concurrency int           `env:"STORELENS_CONCURRENCY" default:"4" help:"Categories extracted at once"`
	RPS         float64       `env:"STORELENS_RPS" default:"0" help:"Per-host request rate limit (0 disables)"`
	LogLevel    string        `env:"STORELENS_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	Verbose     bool          `short:"v" help:"Log at debug level"`

	Extract ExtractCmd `cmd:"" help:"Extract brand insights from a storefront"`
	Show    ShowCmd    `cmd:"" help:"Show stored insights for a domain"`
	List    ListCmd    `cmd:"" help:"List stored storefronts"`
	Delete  DeleteCmd  `cmd:"" help:"Delete stored insights for a domain"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Storefront URL (scheme optional)"`
	NoSave bool   `name:"no-save" help:"Print the result without storing it"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Domain string `arg:"" help:"Storefront domain"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Failed bool `help:"Only list extractions that recorded errors"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Domain string `arg:"" help:"Storefront domain"`
	Force  bool   `help:"Confirm deletion"`
}
