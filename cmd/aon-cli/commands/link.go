package commands

import (
	"fmt"

	"aonscraper/internal/scrapers/aon"
	"aonscraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var suggestionsOnly bool

func init() {
	linkCmd.Flags().BoolVar(&suggestionsOnly, "suggestions", false, "Only print labels without an exact trait.")
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link [--suggestions]",
	Short: "Matches the trait labels of saved spells to saved traits.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openStore()
		defer closeStore()

		spells, err := store.Spells(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list spells", err)
		}
		traits, err := store.Traits(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list traits", err)
		}

		labels := aon.SpellTraitLabels(spells)
		links := aon.LinkTraits(labels, traits)

		linked := make(map[string]struct{}, len(links))
		t := newTable()
		t.AppendHeader(table.Row{"Label", "Trait", "Id", "Correlation"})
		for _, link := range links {
			linked[link.Label] = struct{}{}
			if suggestionsOnly && link.Exact() {
				continue
			}
			t.AppendRow(table.Row{
				link.Label,
				link.TraitName,
				link.TraitId,
				fmt.Sprintf("%.3f", link.Correlation),
			})
		}
		for _, label := range labels {
			if _, ok := linked[label]; !ok {
				t.AppendRow(table.Row{label, "", "", ""})
			}
		}
		t.Render()
	},
}
