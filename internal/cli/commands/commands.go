package commands

import (
	"github.com/spf13/cobra"

	"plgrader/internal/cli"
	"plgrader/internal/config"
	"plgrader/internal/logging"
)

// Commands holds all CLI commands
type Commands struct {
	Grade   *GradeCommand
	List    *ListCommand
	Summary *SummaryCommand
	View    *ViewCommand
	Migrate *MigrateCommand
}

// NewCommands creates all commands. Dependencies that depend on flags are built when a command runs.
func NewCommands(cfg *config.Config) *Commands {
	return &Commands{
		Grade:   NewGradeCommand(cfg),
		List:    NewListCommand(cfg),
		Summary: NewSummaryCommand(cfg),
		View:    NewViewCommand(cfg),
		Migrate: NewMigrateCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a TOML config file (default: ./"+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	// Update config with flags after parsing
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		logging.Setup(cfg.LogLevel)
		return nil
	}

	// Grade command
	gradeCmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a Prolog submission",
		Long:  "Read a submission request as JSON, run every test file against it and print the grade report as JSON",
		Args:  cobra.NoArgs,
		RunE:  c.Grade.Execute,
	}
	gradeCmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Read the request from a file instead of stdin")
	gradeCmd.Flags().StringVarP(&flags.Save, "save", "s", "", "Also write the report to this file")
	gradeCmd.Flags().StringVarP(&flags.Workspace, "workspace", "w", "", "Workspace directory (default: "+config.DefaultWorkspacePath+")")
	gradeCmd.Flags().StringVar(&flags.Interpreter, "interpreter", "", "Prolog interpreter (default: "+config.DefaultInterpreter+")")
	gradeCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per test file timeout, 0 disables it")
	gradeCmd.Flags().StringVar(&flags.ArchiveDSN, "archive-dsn", "", "MySQL DSN to archive the report to")
	gradeCmd.Flags().BoolVarP(&flags.Progress, "progress", "p", false, "Show a progress bar even when stderr is not a terminal")
	rootCmd.AddCommand(gradeCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List test files",
		Long:  "Scan a test tree and list the test files a grading run would execute",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.TestRoot, "test-root", "t", "", "Path to the test tree")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., 'test_pr1*' or '*lists*')")
	_ = listCmd.MarkFlagRequired("test-root")
	rootCmd.AddCommand(listCmd)

	// Summary command
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a saved report",
		Long:  "Print a table of the suites and problems of a report saved with grade --save",
		Args:  cobra.NoArgs,
		RunE:  c.Summary.Execute,
	}
	summaryCmd.Flags().StringVarP(&flags.Report, "report", "r", "", "Path to the saved report")
	_ = summaryCmd.MarkFlagRequired("report")
	rootCmd.AddCommand(summaryCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a saved report interactively",
		Long:  "Display the suites, problems and console output of a saved report in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.View.Execute,
	}
	viewCmd.Flags().StringVarP(&flags.Report, "report", "r", "", "Path to the saved report")
	_ = viewCmd.MarkFlagRequired("report")
	rootCmd.AddCommand(viewCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the report archive table",
		Long:  "Create the MySQL database and table that grade --archive-dsn writes to",
		Args:  cobra.NoArgs,
		RunE:  c.Migrate.Execute,
	}
	migrateCmd.Flags().StringVar(&flags.ArchiveDSN, "archive-dsn", "", "MySQL DSN of the archive (or "+config.EnvArchiveDSN+")")
	rootCmd.AddCommand(migrateCmd)
}
