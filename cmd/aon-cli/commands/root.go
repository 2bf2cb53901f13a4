package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"aonscraper/internal/recordstore"
	"aonscraper/internal/scrapers/aon"
	"aonscraper/internal/telemetry"
	"aonscraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg Config
	tel telemetry.API = telemetry.SlogAPI{}

	providers telemetry.Providers
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The config file, <name>.local.json5 next to it overrides it.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request and page.")
}

var rootCmd = &cobra.Command{
	Use:   "aon-cli",
	Short: "aon-cli scrapes spells and traits off the Archives of Nethys.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(os.Stderr, verbose)

		var err error
		cfg, err = readConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		providers, err = telemetry.SetupOtel(cmd.Context(), "aon-cli", cfg.OtlpHttpEndpoint)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return providers.Shutdown(context.Background())
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScraper() aon.Scraper {
	opts, err := cfg.clientOptions()
	if err != nil {
		serviceutil.Fatal("failed to prepare http dump directory", err)
	}
	client, err := aon.NewClient(opts, tel)
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	return aon.NewScraper(client, tel, cfg.Concurrency)
}

// instrumentScrape records process gauges while a scrape runs, the returned
// func stops them and logs the final usage.
func instrumentScrape(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	telemetry.InstrumentPerfStats(ctx, 10*time.Second, tel)
	return func() {
		cancel()
		telemetry.ReportPerfStats(context.Background(), tel)
	}
}

func openStore() (recordstore.Store, func()) {
	database, err := recordstore.Open(cfg.Db)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	return recordstore.NewStore(database), func() { database.Close() }
}
