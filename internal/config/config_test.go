package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "twentyone.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, game.DefaultStartingChips, cfg.Session.StartingChips)
	assert.Equal(t, game.BotNames, cfg.Bots.Names)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "twentyone.log", cfg.Log.File)

	pacing, err := cfg.PacingDurations()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultPacing(), pacing)
	require.NoError(t, cfg.Validate())
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
session {
  starting_chips = 200
}

pacing {
  think  = "500ms"
  reveal = "0s"
}

bots {
  names = ["Ada", "Brian"]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 200, cfg.Session.StartingChips)
	assert.Equal(t, []string{"Ada", "Brian"}, cfg.Bots.Names)
	assert.Equal(t, "info", cfg.Log.Level)

	pacing, err := cfg.PacingDurations()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, pacing.Think)
	assert.Zero(t, pacing.Reveal)
	assert.Equal(t, 5*time.Second, pacing.BetweenRounds)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `session {`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `table "main" {}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no chips", func(c *Config) { c.Session.StartingChips = -1 }},
		{"bad duration", func(c *Config) { c.Pacing.Think = "soon" }},
		{"negative duration", func(c *Config) { c.Pacing.Settle = "-1s" }},
		{"empty bot name", func(c *Config) { c.Bots.Names = []string{"Ada", ""} }},
		{"duplicate bot name", func(c *Config) { c.Bots.Names = []string{"Ada", "Ada"} }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
