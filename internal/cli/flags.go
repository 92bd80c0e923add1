package cli

import (
	"time"

	"plgrader/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	LogLevel    string
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
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:  f.ConfigFile,
		LogLevel:    f.LogLevel,
		Input:       f.Input,
		Save:        f.Save,
		Report:      f.Report,
		Workspace:   f.Workspace,
		Interpreter: f.Interpreter,
		Timeout:     f.Timeout,
		ArchiveDSN:  f.ArchiveDSN,
		Progress:    f.Progress,
		TestRoot:    f.TestRoot,
		NameFilter:  f.NameFilter,
	}
}
