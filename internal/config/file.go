package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors plgrader.toml
type fileConfig struct {
	Workspace string `toml:"workspace"`
	Runner    struct {
		Interpreter     string   `toml:"interpreter"`
		Args            []string `toml:"args"`
		TestFilePattern string   `toml:"test_file_pattern"`
		Sentinel        string   `toml:"sentinel"`
		Timeout         string   `toml:"timeout"`
	} `toml:"runner"`
	Archive struct {
		DSN   string `toml:"dsn"`
		Table string `toml:"table"`
	} `toml:"archive"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
	}

	if fc.Workspace != "" {
		c.WorkspacePath = fc.Workspace
	}
	if fc.Runner.Interpreter != "" {
		c.Interpreter = fc.Runner.Interpreter
	}
	if fc.Runner.Args != nil {
		c.RunArgs = fc.Runner.Args
	}
	if fc.Runner.TestFilePattern != "" {
		c.TestFilePattern = fc.Runner.TestFilePattern
	}
	if fc.Runner.Sentinel != "" {
		c.Sentinel = fc.Runner.Sentinel
	}
	if fc.Runner.Timeout != "" {
		d, err := time.ParseDuration(fc.Runner.Timeout)
		if err != nil {
			return fmt.Errorf("invalid runner.timeout in %s: %w", path, err)
		}
		c.Timeout = d
	}
	if fc.Archive.DSN != "" {
		c.ArchiveDSN = fc.Archive.DSN
	}
	if fc.Archive.Table != "" {
		c.ArchiveTable = fc.Archive.Table
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	return nil
}
