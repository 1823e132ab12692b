package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// harvestCmd runs the pipeline non-interactively from flags.
func (a *app) harvestCmd() *cobra.Command {
	var (
		urls     []string
		category string
		last     bool
		opts     runOptions
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest articles from feeds and pages",
		Example: `  newsreap harvest --category Technology --keywords "ai,chips" --since 2026-08-01
  newsreap harvest --url https://feeds.feedburner.com/TheHackersNews --formats csv,html
  newsreap harvest --last`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case last:
				prev, err := a.loadSettings()
				if err != nil {
					return err
				}
				if prev.IsZero() {
					return errors.New("no previous settings saved")
				}
				opts.urls = prev.URLs
				if opts.keywords == "" {
					opts.keywords = prev.Keywords
				}
				if opts.since == "" {
					opts.since = prev.StartDate
				}
				if opts.out == "" {
					opts.out = prev.OutputFile
				}
				if opts.formats == "" {
					opts.formats = prev.Formats
				}
			case category != "":
				catURLs, err := a.catalog.URLs(category)
				if err != nil {
					return err
				}
				opts.urls = append(catURLs, urls...)
			default:
				opts.urls = urls
			}

			opts.save = true
			return a.run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVar(&urls, "url", nil, "source URL (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "preset category to harvest")
	cmd.Flags().BoolVar(&last, "last", false, "reuse the previous run's settings")
	cmd.Flags().StringVar(&opts.keywords, "keywords", "", "comma-separated keyword filter (empty matches all)")
	cmd.Flags().StringVar(&opts.since, "since", "", "drop articles published before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output base name (default \"results\")")
	cmd.Flags().StringVar(&opts.formats, "formats", "", "export formats: csv, json, html (default \"csv,json\")")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "scrape article pages to fill missing metadata")
	cmd.Flags().BoolVar(&opts.skipSeen, "skip-seen", false, "skip articles exported by previous runs")
	cmd.Flags().StringVar(&opts.publishFile, "publish", "", "publishers config file for post-export fan-out")

	return cmd
}
