package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/recordkit/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMainConfig(t *testing.T) {
	t.Run("yaml with defaults", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", `
input_dir: ./in
batch_size: 100
report_format: xml
`)
		cfg, err := config.LoadMainConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "./in", cfg.InputDir)
		assert.Equal(t, "./output", cfg.OutputDir)
		assert.Equal(t, 100, cfg.BatchSize)
		assert.Equal(t, "xml", cfg.ReportFormat)
		assert.Equal(t, 4, cfg.MaxConcurrency)
		assert.Equal(t, "{file}_{timestamp}", cfg.ReportNameFormat)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.toml", `
output_dir = "./reports"
max_errors = 25
archive_on_success = true
`)
		cfg, err := config.LoadMainConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "./reports", cfg.OutputDir)
		assert.Equal(t, 25, cfg.MaxErrors)
		assert.True(t, cfg.ArchiveOnSuccess)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", "batch_size: 100\n")
		t.Setenv("RECORDKIT_BATCH_SIZE", "7")
		t.Setenv("RECORDKIT_LOG_LEVEL", "debug")

		cfg, err := config.LoadMainConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.BatchSize)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := config.LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 500, cfg.BatchSize)
		assert.Equal(t, "text", cfg.ReportFormat)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", "report_format: pdf\nbatch_size: -1\n")
		_, err := config.LoadMainConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "report_format")
		assert.Contains(t, err.Error(), "batch_size")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", "input_dir: [\n")
		_, err := config.LoadMainConfig(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

const customersYAML = `
name: customers
file_matching_patterns: ["customers_*.csv"]
text_settings:
  delimiter: ";"
  header_lines: 1
fields:
  - name: Id
    type: int
  - name: Name
    max_length: 50
  - name: Email
    type: email
    optional: true
`

const ordersTOML = `
file_matching_patterns = ["ORD*.TXT"]

[text_settings]
delimiter = "tab"
encoding = "ISO-8859-1"

[[fields]]
name = "Order"
type = "long"

[[fields]]
name = "Total"
type = "decimal"
min = "0"
`

func TestLoadLayoutConfigs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.yaml", customersYAML)
	writeFile(t, dir, "orders.toml", ordersTOML)
	writeFile(t, dir, "notes.md", "ignored")

	layouts, err := config.LoadLayoutConfigs(dir)
	require.NoError(t, err)
	require.Len(t, layouts, 2)
	assert.Equal(t, []string{"customers", "orders"}, config.SortedNames(layouts))

	customers := layouts["customers"]
	assert.Equal(t, ';', customers.Delimiter())
	assert.Equal(t, 2, customers.TextSettings.LineFrom)
	assert.Equal(t, "UTF-8", customers.TextSettings.Encoding)
	assert.Equal(t, []string{".csv", ".txt"}, customers.AllowedExtensions)
	require.Len(t, customers.Fields, 3)
	assert.Equal(t, "string", customers.Fields[1].Type)
	assert.True(t, customers.Fields[2].Optional)

	orders := layouts["orders"]
	assert.Equal(t, '\t', orders.Delimiter())
	assert.Equal(t, "ISO-8859-1", orders.TextSettings.Encoding)
	assert.Equal(t, "0", orders.Fields[1].Min)
	assert.Equal(t, filepath.Join(dir, "orders.toml"), orders.Source)
}

func TestLoadLayoutConfigsErrors(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		_, err := config.LoadLayoutConfigs(t.TempDir())
		assert.ErrorIs(t, err, config.ErrNoLayouts)
	})

	t.Run("duplicate names", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "name: same\n")
		writeFile(t, dir, "b.yaml", "name: same\n")
		_, err := config.LoadLayoutConfigs(dir)
		assert.ErrorContains(t, err, `layout "same" is defined in both`)
	})

	t.Run("multi-character delimiter", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "text_settings:\n  delimiter: '||'\n")
		_, err := config.LoadLayoutConfigs(dir)
		assert.ErrorContains(t, err, "single character")
	})

	t.Run("line range", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "text_settings:\n  line_from: 5\n  line_to: 2\n")
		_, err := config.LoadLayoutConfigs(dir)
		assert.ErrorContains(t, err, "line_from 5 is after line_to 2")
	})
}

func TestFindLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.yaml", customersYAML)
	writeFile(t, dir, "orders.toml", ordersTOML)
	layouts, err := config.LoadLayoutConfigs(dir)
	require.NoError(t, err)

	l, ok := config.FindLayout(layouts, "/data/in/Customers_2024.CSV")
	require.True(t, ok)
	assert.Equal(t, "customers", l.Name)

	l, ok = config.FindLayout(layouts, "ord_001.txt")
	require.True(t, ok)
	assert.Equal(t, "orders", l.Name)

	_, ok = config.FindLayout(layouts, "unknown.csv")
	assert.False(t, ok)
}
