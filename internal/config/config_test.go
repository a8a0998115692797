package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := `companies: [2, 3, 1]
days: 2
groups: 3
seed: 42
trials: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, cfg.Companies)
	assert.Equal(t, 2, cfg.Days)
	assert.Equal(t, 3, cfg.Groups)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 50, cfg.Trials)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies: [4, 4]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, cfg.Companies)
	assert.Zero(t, cfg.Days, "unset fields stay zero")
	assert.Zero(t, cfg.Groups)
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies: ["), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse")
}
