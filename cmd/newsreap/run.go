package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/newsreap/newsreap/internal/domain"
	"github.com/newsreap/newsreap/internal/export"
	"github.com/newsreap/newsreap/internal/fetch"
	"github.com/newsreap/newsreap/internal/filter"
	"github.com/newsreap/newsreap/internal/history"
	"github.com/newsreap/newsreap/internal/settings"
	"github.com/newsreap/newsreap/pkg/httpclient"
	"github.com/newsreap/newsreap/pkg/publishers"
)

// runOptions is the resolved configuration for one harvest run.
type runOptions struct {
	urls        []string
	keywords    string
	since       string
	out         string
	formats     string
	enrich      bool
	skipSeen    bool
	publishFile string
	save        bool
}

// run executes the pipeline: harvest, summarize, export, and optionally
// record history and fan out to publishers.
func (a *app) run(ctx context.Context, opts runOptions) error {
	if len(opts.urls) == 0 {
		return errors.New("no source URLs to harvest")
	}
	if opts.out == "" {
		opts.out = "results"
	}
	if opts.formats == "" {
		opts.formats = "csv,json"
	}

	since, err := parseSince(opts.since)
	if err != nil {
		return err
	}
	formats, err := export.ParseFormats(opts.formats)
	if err != nil {
		return err
	}

	crit := fetch.Criteria{
		Keywords: filter.NewKeywords(opts.keywords),
		Since:    since,
	}

	harvestOpts := []fetch.Option{fetch.WithDelay(a.delay)}

	var store *history.Store
	if opts.skipSeen {
		path, err := history.DefaultPath()
		if err != nil {
			return err
		}
		store, err = history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		harvestOpts = append(harvestOpts, fetch.WithSeen(store.Seen))
	}

	client := httpclient.NewRestyClient(a.timeout)
	harvester := fetch.NewHarvester(client, a.log, harvestOpts...)

	fmt.Printf("Harvesting %d source(s)...\n\n", len(opts.urls))
	res := harvester.Run(ctx, opts.urls, crit)

	if opts.enrich && len(res.Articles) > 0 {
		fmt.Println("Enriching articles missing metadata...")
		res.Articles = harvester.Enrich(ctx, res.Articles)
	}

	printSummary(res)

	if opts.save {
		if err := a.saveSettings(opts); err != nil {
			a.log.Warnw("settings not saved", "error", err.Error())
		}
	}

	if len(res.Articles) == 0 {
		fmt.Println("No articles matched the given filters.")
		return nil
	}

	paths, err := export.WriteFiles(opts.out, formats, res.Articles)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println("Saved", p)
	}

	if store != nil {
		if err := store.Record(res.Articles); err != nil {
			a.log.Warnw("history not recorded", "error", err.Error())
		}
	}

	if opts.publishFile != "" {
		if err := a.publish(ctx, opts.publishFile, res.Articles); err != nil {
			return err
		}
	}

	return nil
}

// publish loads publisher configs and delivers every article to each
// enabled sink.
func (a *app) publish(ctx context.Context, path string, articles []domain.Article) error {
	cfgs, err := publishers.LoadConfigs(path)
	if err != nil {
		return err
	}

	enabled := publishers.Enabled(cfgs)
	if len(enabled) == 0 {
		fmt.Println("No enabled publishers configured.")
		return nil
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, a.log)
	if err != nil {
		return err
	}

	failures := publishers.PublishAll(ctx, pubs, articles, a.log)
	delivered := len(pubs)*len(articles) - failures
	fmt.Printf("Published %d event(s) to %d sink(s)", delivered, len(pubs))
	if failures > 0 {
		fmt.Printf(" (%d failed)", failures)
	}
	fmt.Println()
	return nil
}

// saveSettings overwrites the settings memory file with this run.
func (a *app) saveSettings(opts runOptions) error {
	path, err := settings.DefaultPath()
	if err != nil {
		return err
	}
	return settings.Save(path, settings.Settings{
		URLs:       opts.urls,
		Keywords:   opts.keywords,
		StartDate:  opts.since,
		OutputFile: opts.out,
		Formats:    opts.formats,
	})
}

// loadSettings reads the settings memory file.
func (a *app) loadSettings() (settings.Settings, error) {
	path, err := settings.DefaultPath()
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Load(path)
}

// parseSince validates the optional YYYY-MM-DD start date filter.
func parseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", raw)
	}
	return t, nil
}

// printSummary renders the per-source outcome table.
func printSummary(res fetch.Result) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tARTICLES\tSTATUS")
	for _, stat := range res.Stats {
		fmt.Fprintf(w, "%s\t%d\t%s\n", domain.SourceNameFromURL(stat.URL), stat.Articles, stat.Status)
	}
	w.Flush()

	fmt.Printf("\nTotal articles found: %d\n\n", len(res.Articles))
}
