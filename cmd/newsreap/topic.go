package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsreap/newsreap/internal/fetch"
)

// topicCmd discovers articles for a free-form topic through the Bing
// News RSS feed.
func (a *app) topicCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "topic <query>",
		Short: "Discover and harvest articles for a topic via Bing News",
		Example: `  newsreap topic "quantum computing"
  newsreap topic bitcoin --since 2026-08-20 --formats html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")

			feedURL := fetch.BingNewsFeedURL(topic)
			fmt.Println("Bing News feed:", feedURL)

			opts.urls = []string{feedURL}
			if opts.out == "" {
				opts.out = strings.ToLower(strings.ReplaceAll(topic, " ", "_")) + "_news"
			}
			return a.run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.keywords, "keywords", "", "additional comma-separated keyword filter")
	cmd.Flags().StringVar(&opts.since, "since", "", "drop articles published before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output base name (default derived from topic)")
	cmd.Flags().StringVar(&opts.formats, "formats", "", "export formats: csv, json, html (default \"csv,json\")")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "scrape article pages to fill missing metadata")
	cmd.Flags().BoolVar(&opts.skipSeen, "skip-seen", false, "skip articles exported by previous runs")
	cmd.Flags().StringVar(&opts.publishFile, "publish", "", "publishers config file for post-export fan-out")

	return cmd
}
