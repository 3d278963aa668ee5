package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leuchre.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
server {
  address = "euchred.example.com"
  port    = 4321
}

simulation {
  count   = 5000
  threads = 8
  stats   = true
  seed    = 12345
}

team "1" {
  strategy = "random0"
}

team "2" {
  strategy = "random"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "euchred.example.com", cfg.Server.Address)
	assert.Equal(t, 4321, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Simulation.Count)
	assert.Equal(t, 8, cfg.Simulation.Threads)
	assert.True(t, cfg.Simulation.Stats)
	assert.Equal(t, int64(12345), cfg.Simulation.Seed)
	assert.Equal(t, "random0", cfg.Team("1", "random"))
	assert.Equal(t, "random", cfg.Team("2", "random0"))
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
server {}

simulation {
  count = 10
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Simulation.Count)
	assert.Equal(t, 1, cfg.Simulation.Threads, "unset threads default to one")
	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.Equal(t, 1234, cfg.Server.Port)
}

func TestLoadBadSyntax(t *testing.T) {
	path := writeConfig(t, `simulation { count = `)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestTeamFallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "random0", cfg.Team("1", "random0"))

	cfg.Teams = []TeamConfig{{Name: "1", Strategy: ""}}
	assert.Equal(t, "random0", cfg.Team("1", "random0"),
		"an empty strategy falls through to the fallback")
}
