package commands

import (
	"time"

	"aonscraper/internal/scrapers/aon"
	"aonscraper/lib/configutil"
	"aonscraper/lib/restyutil"
)

type Config struct {
	BaseUrl string `json:"base_url"`
	// spacing between two requests, a negative value disables pacing
	DelayMs          int    `json:"delay_ms"`
	Concurrency      int    `json:"concurrency"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	UserAgent        string `json:"user_agent"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	// when set every http exchange is dumped to this directory
	DumpDir          string `json:"dump_dir"`
	Db               string `json:"db"`
	OtlpHttpEndpoint string `json:"otlp_http_endpoint"`
}

var defaultConfig = Config{
	BaseUrl:        aon.BaseUrl,
	DelayMs:        1000,
	Concurrency:    1,
	TimeoutSeconds: 30,
	Db:             "aon.db",
}

func readConfig(name string) (Config, error) {
	return configutil.ReadConfigOr(name, defaultConfig)
}

func (c Config) clientOptions() (aon.ClientOptions, error) {
	opts := aon.ClientOptions{
		BaseUrl:          c.BaseUrl,
		Delay:            time.Duration(c.DelayMs) * time.Millisecond,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgent:        c.UserAgent,
		CloudflareBypass: c.CloudflareBypass,
	}
	if c.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(c.DumpDir)
		if err != nil {
			return aon.ClientOptions{}, err
		}
		opts.Output = output
	}
	return opts, nil
}
