package commands

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"aonscraper/internal/scrapers/aon"
	"aonscraper/lib/csvutil"
	"aonscraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	spellIds     []int
	spellsOut    string
	spellsNoSave bool
)

func init() {
	spellsCmd.Flags().IntSliceVar(&spellIds, "ids", nil, "Only scrape the spells with these ids.")
	spellsCmd.Flags().StringVarP(&spellsOut, "out", "o", "-", "Where to write the json results, - is stdout.")
	spellsCmd.Flags().BoolVar(&spellsNoSave, "no-save", false, "Do not write the results to the database.")
	rootCmd.AddCommand(spellsCmd)
}

func writeJSON(path string, value any) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

var spellsCmd = &cobra.Command{
	Use:   "spells <path/to/spells.csv> [--ids 1,2,3] [-o out.json]",
	Short: "Scrapes the page of every base spell in a spell table export.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rows, err := csvutil.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read spell export", err)
		}

		seeds := aon.ParseSeeds(rows, tel)
		seeds = aon.FilterIds(aon.BaseSpells(seeds), spellIds)
		slog.Info("scraping spells", "count", len(seeds))

		stopInstrument := instrumentScrape(cmd.Context())
		t1 := time.Now()
		spells, err := newScraper().ScrapeSpells(cmd.Context(), seeds)
		stopInstrument()
		if err != nil {
			slog.Warn("some spells were not fully scraped", "err", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		if !spellsNoSave {
			store, closeStore := openStore()
			defer closeStore()
			err = store.PutSpells(cmd.Context(), spells)
			if err != nil {
				serviceutil.Fatal("failed to save spells", err)
			}
		}

		err = writeJSON(spellsOut, spells)
		if err != nil {
			serviceutil.Fatal("failed to write results", err)
		}
	},
}
