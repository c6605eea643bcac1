package utils_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/recordkit/pkg/utils"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.csv"), "1")
	writeFile(t, filepath.Join(dir, "a.TXT"), "1")
	writeFile(t, filepath.Join(dir, "c.xlsx"), "1")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	fm := utils.NewFileManager(dir, t.TempDir(), t.TempDir())

	t.Run("filtered", func(t *testing.T) {
		files, err := fm.DiscoverInputFiles([]string{".csv", "txt"})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.TXT"), filepath.Join(dir, "b.csv")}, files)
	})

	t.Run("all", func(t *testing.T) {
		files, err := fm.DiscoverInputFiles(nil)
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("missing directory", func(t *testing.T) {
		fm := utils.NewFileManager(filepath.Join(dir, "missing"), "", "")
		_, err := fm.DiscoverInputFiles(nil)
		assert.Error(t, err)
	})
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	fm := utils.NewFileManager(root, filepath.Join(root, "out", "reports"), filepath.Join(root, "archive"))
	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, filepath.Join(root, "out", "reports"))
	assert.DirExists(t, filepath.Join(root, "archive"))

	fm.InputDir = filepath.Join(root, "missing")
	assert.Error(t, fm.EnsureDirectories())
}

func TestArchiveInputFile(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "customers.csv")
	writeFile(t, input, "1,John")

	t.Run("disabled", func(t *testing.T) {
		fm := utils.NewFileManager(root, root, filepath.Join(root, "archive"))
		fm.ArchiveOnSuccess = false
		path, err := fm.ArchiveInputFile(input)
		require.NoError(t, err)
		assert.Equal(t, input, path)
		assert.True(t, utils.FileExists(input))
	})

	t.Run("dated", func(t *testing.T) {
		fm := utils.NewFileManager(root, root, filepath.Join(root, "archive"))
		fm.UseTimestampSubdirs = true
		path, err := fm.ArchiveInputFile(input)
		require.NoError(t, err)

		assert.False(t, utils.FileExists(input))
		assert.FileExists(t, path)
		rel, err := filepath.Rel(filepath.Join(root, "archive"), path)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2}/customers\.csv$`), filepath.ToSlash(rel))
	})
}

func TestGenerateOutputFileName(t *testing.T) {
	name := utils.GenerateOutputFileName("{layout}_{file}_{timestamp}", map[string]string{
		"layout": "customers",
		"file":   "customers_01",
	})
	assert.Regexp(t, `^customers_customers_01_\d{8}_\d{6}$`, name)

	name = utils.GenerateOutputFileName("{uuid}", nil)
	assert.Len(t, name, 36)

	assert.Equal(t, "report", utils.GenerateOutputFileName("report", nil))
	assert.Equal(t, "customers_01", utils.TrimExtension("in/customers_01.csv"))
}
