// Package config loads the optional HCL table configuration.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/twentyone/internal/game"
)

// DefaultFile is the config file read when none is named.
const DefaultFile = "twentyone.hcl"

// Config represents the complete table configuration
type Config struct {
	Session *SessionConfig `hcl:"session,block"`
	Pacing  *PacingConfig  `hcl:"pacing,block"`
	Bots    *BotsConfig    `hcl:"bots,block"`
	Log     *LogConfig     `hcl:"log,block"`
}

// SessionConfig contains per-session settings
type SessionConfig struct {
	StartingChips int `hcl:"starting_chips,optional"`
}

// PacingConfig holds the cosmetic delays as duration strings, e.g. "1.5s".
type PacingConfig struct {
	Think         string `hcl:"think,optional"`
	Reveal        string `hcl:"reveal,optional"`
	DealerDraw    string `hcl:"dealer_draw,optional"`
	Settle        string `hcl:"settle,optional"`
	BetweenRounds string `hcl:"between_rounds,optional"`
}

// BotsConfig names the automated players.
type BotsConfig struct {
	Names []string `hcl:"names,optional"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file is not an
// error; defaults are returned instead.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Session == nil {
		c.Session = &SessionConfig{}
	}
	if c.Session.StartingChips == 0 {
		c.Session.StartingChips = game.DefaultStartingChips
	}

	if c.Pacing == nil {
		c.Pacing = &PacingConfig{}
	}
	defaults := game.DefaultPacing()
	fill := func(field *string, d time.Duration) {
		if *field == "" {
			*field = d.String()
		}
	}
	fill(&c.Pacing.Think, defaults.Think)
	fill(&c.Pacing.Reveal, defaults.Reveal)
	fill(&c.Pacing.DealerDraw, defaults.DealerDraw)
	fill(&c.Pacing.Settle, defaults.Settle)
	fill(&c.Pacing.BetweenRounds, defaults.BetweenRounds)

	if c.Bots == nil {
		c.Bots = &BotsConfig{}
	}
	if len(c.Bots.Names) == 0 {
		c.Bots.Names = slices.Clone(game.BotNames)
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "twentyone.log"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.StartingChips < game.MinimumBet {
		return fmt.Errorf("starting chips must be at least %d", game.MinimumBet)
	}

	if _, err := c.PacingDurations(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Bots.Names))
	for _, name := range c.Bots.Names {
		if name == "" {
			return fmt.Errorf("bot names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate bot name %q", name)
		}
		seen[name] = true
	}

	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// PacingDurations converts the pacing block into game delays.
func (c *Config) PacingDurations() (game.Pacing, error) {
	var pacing game.Pacing
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"think", c.Pacing.Think, &pacing.Think},
		{"reveal", c.Pacing.Reveal, &pacing.Reveal},
		{"dealer_draw", c.Pacing.DealerDraw, &pacing.DealerDraw},
		{"settle", c.Pacing.Settle, &pacing.Settle},
		{"between_rounds", c.Pacing.BetweenRounds, &pacing.BetweenRounds},
	}
	for _, f := range fields {
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return game.Pacing{}, fmt.Errorf("pacing %s: %w", f.name, err)
		}
		if d < 0 {
			return game.Pacing{}, fmt.Errorf("pacing %s: must not be negative", f.name)
		}
		*f.dst = d
	}
	return pacing, nil
}
