package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/newsreap/newsreap/internal/fetch"
)

const banner = `
  NEWSREAP - terminal news aggregator
  RSS feeds, web scraping, topic discovery`

// runInteractive drives the menu flow used when no subcommand is given.
func (a *app) runInteractive(ctx context.Context) error {
	fmt.Println(banner)

	prev, err := a.loadSettings()
	if err != nil {
		a.log.Warnw("settings not loaded", "error", err.Error())
	}

	fmt.Println("  [1] Use previous settings")
	fmt.Println("  [2] Enter new settings manually")
	fmt.Println("  [3] Discover & harvest by topic")
	fmt.Println("  [4] Choose from preset sources")
	fmt.Println("  [5] Exit")
	if !prev.IsZero() {
		fmt.Printf("\n  Last run: %d URL(s), keywords=%q, at %s\n", len(prev.URLs), prev.Keywords, prev.LastRun)
	}
	fmt.Println()

	in := bufio.NewScanner(os.Stdin)
	choice := prompt(in, "Your choice", "3")

	opts := runOptions{save: true}

	switch choice {
	case "1":
		if prev.IsZero() {
			fmt.Println("No previous settings saved; enter new settings.")
			opts.urls = promptURLs(in)
		} else {
			opts.urls = prev.URLs
			opts.keywords = prev.Keywords
			opts.since = prev.StartDate
			opts.out = prev.OutputFile
			opts.formats = prev.Formats
			fmt.Println("Loaded previous settings.")
			return a.run(ctx, opts)
		}
	case "2":
		opts.urls = promptURLs(in)
	case "3":
		topic := prompt(in, "Enter your topic", "Technology")
		feedURL := fetch.BingNewsFeedURL(topic)
		fmt.Println("Bing News feed:", feedURL)
		opts.urls = []string{feedURL}
		opts.out = strings.ToLower(strings.ReplaceAll(topic, " ", "_")) + "_news"
		opts.save = false
	case "4":
		urls, err := a.promptPresets(in)
		if err != nil {
			return err
		}
		opts.urls = urls
	default:
		fmt.Println("Goodbye!")
		return nil
	}

	opts.keywords = prompt(in, "Keywords (comma-separated, empty for all)", "")
	opts.since = promptDate(in)
	if opts.out == "" {
		opts.out = prompt(in, "Output filename (without extension)", "results")
	}
	opts.formats = promptFormats(in)

	return a.run(ctx, opts)
}

// promptPresets walks the category/source selection menu.
func (a *app) promptPresets(in *bufio.Scanner) ([]string, error) {
	cats := a.catalog.Categories()

	fmt.Println("\nSelect a category:")
	for i, cat := range cats {
		fmt.Printf("  [%d] %s (%d sources)\n", i+1, cat.Name, len(cat.Sources))
	}
	fmt.Println("  [0] Enter custom URLs")

	idx, err := strconv.Atoi(prompt(in, "Category", "1"))
	if err != nil || idx < 0 || idx > len(cats) {
		return nil, fmt.Errorf("invalid category selection")
	}
	if idx == 0 {
		return promptURLs(in), nil
	}

	cat := cats[idx-1]
	fmt.Printf("\n%s:\n", cat.Name)
	for i, s := range cat.Sources {
		fmt.Printf("  [%d] %s\n", i+1, s.Name)
	}
	fmt.Println("  [A] ALL in this category")

	pick := prompt(in, "Sources (comma-separated, or A for all)", "A")
	if strings.EqualFold(pick, "a") {
		urls := make([]string, 0, len(cat.Sources))
		for _, s := range cat.Sources {
			urls = append(urls, s.URL)
		}
		return urls, nil
	}

	var urls []string
	for _, part := range strings.Split(pick, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(cat.Sources) {
			continue
		}
		urls = append(urls, cat.Sources[n-1].URL)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no sources selected")
	}
	return urls, nil
}

// promptURLs asks for a comma-separated URL list.
func promptURLs(in *bufio.Scanner) []string {
	raw := prompt(in, "Enter URLs (comma-separated)", "https://feeds.feedburner.com/TheHackersNews")

	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// promptDate loops until it gets a valid date or an empty answer.
func promptDate(in *bufio.Scanner) string {
	for {
		raw := prompt(in, "Start date filter (YYYY-MM-DD, empty for none)", "")
		if raw == "" {
			return ""
		}
		if _, err := parseSince(raw); err == nil {
			return raw
		}
		fmt.Println("Invalid date format, use YYYY-MM-DD.")
	}
}

// promptFormats maps the numbered export menu onto a format list.
func promptFormats(in *bufio.Scanner) string {
	fmt.Println("\nExport format:")
	fmt.Println("  [1] CSV only")
	fmt.Println("  [2] JSON only")
	fmt.Println("  [3] HTML only")
	fmt.Println("  [4] CSV + JSON")
	fmt.Println("  [5] All formats")

	switch prompt(in, "Choose format", "4") {
	case "1":
		return "csv"
	case "2":
		return "json"
	case "3":
		return "html"
	case "5":
		return "csv,json,html"
	default:
		return "csv,json"
	}
}

// prompt reads one trimmed line, falling back to def on empty input.
func prompt(in *bufio.Scanner, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		return def
	}
	answer := strings.TrimSpace(in.Text())
	if answer == "" {
		return def
	}
	return answer
}
