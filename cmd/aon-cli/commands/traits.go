package commands

import (
	"log/slog"
	"time"

	"aonscraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	traitsOut    string
	traitsNoSave bool
)

func init() {
	traitsCmd.Flags().StringVarP(&traitsOut, "out", "o", "-", "Where to write the json results, - is stdout.")
	traitsCmd.Flags().BoolVar(&traitsNoSave, "no-save", false, "Do not write the results to the database.")
	rootCmd.AddCommand(traitsCmd)
}

var traitsCmd = &cobra.Command{
	Use:   "traits [-o out.json]",
	Short: "Scrapes the trait index and the description of every trait.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stopInstrument := instrumentScrape(cmd.Context())
		t1 := time.Now()
		traits, err := newScraper().ScrapeTraits(cmd.Context())
		stopInstrument()
		if traits == nil && err != nil {
			serviceutil.Fatal("failed to scrape the trait index", err)
		}
		if err != nil {
			slog.Warn("some trait descriptions were not scraped", "err", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds(), "count", len(traits))

		if !traitsNoSave {
			store, closeStore := openStore()
			defer closeStore()
			err = store.PutTraits(cmd.Context(), traits)
			if err != nil {
				serviceutil.Fatal("failed to save traits", err)
			}
		}

		err = writeJSON(traitsOut, traits)
		if err != nil {
			serviceutil.Fatal("failed to write results", err)
		}
	},
}
