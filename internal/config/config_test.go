package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Report.TopKeywords)
	assert.Equal(t, 3, cfg.Report.KeywordMinLength)
	assert.Equal(t, "Meetings", cfg.Calendar.Category)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "effortscope")
	require.NoError(t, os.MkdirAll(dir, 0755))
	data := `[report]
top_keywords = 5

[mapping]
path = "/etc/effortscope/teams.json"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Report.TopKeywords)
	// Unset keys keep their defaults.
	assert.Equal(t, 3, cfg.Report.KeywordMinLength)

	path, err := cfg.MappingPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/effortscope/teams.json", path)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EFFORTSCOPE_DATA_DIR", "/tmp/effortscope-data")
	t.Setenv("EFFORTSCOPE_MAPPING", "/tmp/teams.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/effortscope-data", cfg.Storage.DataDir)

	dbPath, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/effortscope-data", "records.db"), dbPath)

	mappingPath, err := cfg.MappingPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/teams.json", mappingPath)
}

func TestResolvedDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	dbPath, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "effortscope", "records.db"), dbPath)

	mappingPath, err := cfg.MappingPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "effortscope", "team_mapping.json"), mappingPath)
}
