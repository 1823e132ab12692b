package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// sourcesCmd lists the preset catalog.
func (a *app) sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List preset source categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			for _, cat := range a.catalog.Categories() {
				fmt.Fprintf(w, "%s\t(%d sources)\n", cat.Name, len(cat.Sources))
				for _, s := range cat.Sources {
					fmt.Fprintf(w, "  %s\t%s\n", s.Name, s.URL)
				}
			}
			return w.Flush()
		},
	}
}
