package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"plgrader/internal/cli"
	"plgrader/internal/cli/commands"
	"plgrader/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "plgrader",
		Short:         "Prolog submission grader",
		Long:          `Grades Prolog submissions: stages the submission next to its tests, runs every test file with the Prolog interpreter and prints a weighted grade report as JSON.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Interrupts cancel the run in progress; the partial report is still printed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
