package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl     string `json:"base_url"`
	DelayMs     int    `json:"delay_ms"`
	Concurrency int    `json:"concurrency"`
	Verbose     bool   `json:"verbose"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, name, `{
		// comments and trailing commas are fine
		base_url: "https://example.com",
		delay_ms: 1000,
	}`)
	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://example.com", DelayMs: 1000}, cfg)

	writeFile(t, filepath.Join(dir, "config.local.json5"), `{delay_ms: 10, verbose: true}`)
	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://example.com", DelayMs: 10, Verbose: true}, cfg)
}

func TestReadConfigMalformed(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json5")
	writeFile(t, name, `{base_url: `)
	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
}

func TestReadConfigOr(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	defaults := testConfig{BaseUrl: "https://default", DelayMs: 1000, Concurrency: 1}

	cfg, err := ReadConfigOr(name, defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	writeFile(t, name, `{concurrency: 4}`)
	cfg, err = ReadConfigOr(name, defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://default", DelayMs: 1000, Concurrency: 4}, cfg)
}
