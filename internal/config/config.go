// Package config loads the optional leuchre HCL configuration file.
// Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete file configuration.
type Config struct {
	Server     ServerSettings     `hcl:"server,block"`
	Simulation SimulationSettings `hcl:"simulation,block"`
	Teams      []TeamConfig       `hcl:"team,block"`
}

// ServerSettings selects the euchred server a future networked mode would
// talk to. The in-process scheduler accepts but ignores them.
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// SimulationSettings configures the scheduling run.
type SimulationSettings struct {
	Count          int   `hcl:"count,optional"`
	Threads        int   `hcl:"threads,optional"`
	TimeoutSeconds int   `hcl:"timeout_seconds,optional"`
	Stats          bool  `hcl:"stats,optional"`
	Seed           int64 `hcl:"seed,optional"`
}

// TeamConfig assigns a strategy to a team.
type TeamConfig struct {
	Name     string `hcl:"name,label"` // "1" or "2"
	Strategy string `hcl:"strategy"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address: "127.0.0.1",
			Port:    1234,
		},
		Simulation: SimulationSettings{
			Count:          1,
			Threads:        1,
			TimeoutSeconds: 0,
		},
		Teams: []TeamConfig{
			{Name: "1", Strategy: "random"},
			{Name: "2", Strategy: "random"},
		},
	}
}

// Load reads an HCL configuration file, falling back to defaults when the
// file doesn't exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Team returns the strategy configured for a team name, or the fallback.
func (c *Config) Team(name, fallback string) string {
	for _, t := range c.Teams {
		if t.Name == name && t.Strategy != "" {
			return t.Strategy
		}
	}
	return fallback
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Simulation.Count == 0 {
		cfg.Simulation.Count = def.Simulation.Count
	}
	if cfg.Simulation.Threads == 0 {
		cfg.Simulation.Threads = def.Simulation.Threads
	}
}
