// Command newsreap aggregates news from RSS feeds and HTML pages,
// filters the articles by keyword and date, and exports the result to
// CSV, JSON and/or HTML.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/newsreap/newsreap/internal/logger"
	"github.com/newsreap/newsreap/pkg/sources"
)

type app struct {
	log     logger.Logger
	catalog *sources.Catalog

	logLevel    string
	sourcesFile string
	timeout     time.Duration
	delay       time.Duration
}

func main() {
	// A missing .env is fine; it only ever supplies publisher credentials.
	_ = godotenv.Load()

	a := &app{}

	root := &cobra.Command{
		Use:   "newsreap",
		Short: "newsreap - terminal news aggregator",
		Long: "Fetches RSS feeds and scrapes HTML pages from preset or custom sources,\n" +
			"filters articles by keyword and publish date, and exports the results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd.Context())
		},
		Args: cobra.NoArgs,
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.sourcesFile, "sources-file", "", "preset sources catalog (YAML/JSON, default: built-in)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "per-source fetch timeout")
	root.PersistentFlags().DurationVar(&a.delay, "delay", time.Second, "pause between source fetches")

	root.AddCommand(
		a.harvestCmd(),
		a.topicCmd(),
		a.sourcesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup builds the logger and loads the preset catalog.
func (a *app) setup() error {
	log, err := logger.New(a.logLevel)
	if err != nil {
		return err
	}
	a.log = log

	catalog, err := sources.Load(a.sourcesFile)
	if err != nil {
		return err
	}
	a.catalog = catalog
	return nil
}
