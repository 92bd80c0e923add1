package config

import "time"

const (
	// DefaultWorkspacePath is the workspace rebuilt on every grading run
	DefaultWorkspacePath = "/tmp/prolog-tester"
	// DefaultInterpreter is the external test runner
	DefaultInterpreter = "swipl"
	// DefaultTestFilePattern matches workspace relative paths of test suites
	DefaultTestFilePattern = `^test_pr.*\.pl$`
	// DefaultTestFileSuffix is stripped from a test file to form the suite name
	DefaultTestFileSuffix = ".pl"
	// DefaultSentinel precedes the result block in the runner output
	DefaultSentinel = "START_SIMPLE_REPORT\n"
	// DefaultTimeout disables the per-test timeout
	DefaultTimeout time.Duration = 0
	// DefaultArchiveTable stores archived grade reports
	DefaultArchiveTable = "grade_reports"
	// DefaultLogLevel is the slog level name
	DefaultLogLevel = "info"
	// DefaultConfigFile is looked up in the working directory
	DefaultConfigFile = "plgrader.toml"
	// DefaultEnvFile is looked up in the working directory
	DefaultEnvFile = ".env"
)

// DefaultRunArgs make the interpreter run every declared test and halt
var DefaultRunArgs = []string{"-qg", "run_tests", "-t", "halt"}

// Environment variables read by Load
const (
	EnvWorkspace   = "PLGRADER_WORKSPACE"
	EnvInterpreter = "PLGRADER_INTERPRETER"
	EnvRunArgs     = "PLGRADER_RUN_ARGS"
	EnvTimeout     = "PLGRADER_TIMEOUT"
	EnvArchiveDSN  = "PLGRADER_ARCHIVE_DSN"
	EnvLogLevel    = "PLGRADER_LOG_LEVEL"
)
