package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Workspace settings
	WorkspacePath string

	// Runner settings
	Interpreter     string
	RunArgs         []string
	TestFilePattern string
	TestFileSuffix  string
	Sentinel        string
	Timeout         time.Duration

	// Archive settings
	ArchiveDSN   string
	ArchiveTable string

	LogLevel string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	Input       string
	Save        string
	Report      string
	Workspace   string
	Interpreter string
	Timeout     time.Duration
	ArchiveDSN  string
	Progress    bool
	TestRoot    string
	NameFilter  string
	LogLevel    string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		WorkspacePath:   DefaultWorkspacePath,
		Interpreter:     DefaultInterpreter,
		TestFilePattern: DefaultTestFilePattern,
		TestFileSuffix:  DefaultTestFileSuffix,
		Sentinel:        DefaultSentinel,
		Timeout:         DefaultTimeout,
		ArchiveTable:    DefaultArchiveTable,
		LogLevel:        DefaultLogLevel,
	}
	cfg.RunArgs = make([]string, len(DefaultRunArgs))
	copy(cfg.RunArgs, DefaultRunArgs)
	return cfg
}

// Load builds a config from defaults, the TOML file, the environment and flags, in that order
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	configFile := flags.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile
		if _, err := os.Stat(configFile); err != nil {
			configFile = ""
		}
	}
	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			return nil, err
		}
	}

	// .env might not exist, plain environment variables still apply
	_ = godotenv.Load(DefaultEnvFile)
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.applyFlags()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvWorkspace); v != "" {
		c.WorkspacePath = v
	}
	if v := os.Getenv(EnvInterpreter); v != "" {
		c.Interpreter = v
	}
	if v := os.Getenv(EnvRunArgs); v != "" {
		c.RunArgs = strings.Fields(v)
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvArchiveDSN); v != "" {
		c.ArchiveDSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) applyFlags() {
	f := c.Flags
	if f.Workspace != "" {
		c.WorkspacePath = f.Workspace
	}
	if f.Interpreter != "" {
		c.Interpreter = f.Interpreter
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
	if f.ArchiveDSN != "" {
		c.ArchiveDSN = f.ArchiveDSN
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
}

// GetWorkspacePath returns the absolute workspace path
func (c *Config) GetWorkspacePath() string {
	if abs, err := filepath.Abs(c.WorkspacePath); err == nil {
		return abs
	}
	return c.WorkspacePath
}

// GetLockPath returns the lock file guarding the workspace.
// It sits next to the workspace so that Reset can remove the directory itself.
func (c *Config) GetLockPath() string {
	return filepath.Clean(c.GetWorkspacePath()) + ".lock"
}

// TestFileMatcher compiles the test file pattern
func (c *Config) TestFileMatcher() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.TestFilePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid test file pattern %q: %w", c.TestFilePattern, err)
	}
	return re, nil
}

// Command returns the argument vector that runs one test file
func (c *Config) Command(testFile string) []string {
	argv := make([]string, 0, len(c.RunArgs)+2)
	argv = append(argv, c.Interpreter)
	argv = append(argv, c.RunArgs...)
	return append(argv, testFile)
}
