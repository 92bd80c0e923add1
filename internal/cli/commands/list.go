package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plgrader/internal/config"
	"plgrader/internal/discovery"
	"plgrader/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	filter *discovery.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{
		config: cfg,
		filter: discovery.NewFilter(),
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	scanner, err := discovery.NewScanner(lc.config)
	if err != nil {
		return err
	}

	tests, err := scanner.Scan(lc.config.Flags.TestRoot)
	if err != nil {
		return err
	}

	// Filter tests
	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No test files found")
		return nil
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintTestList(tests)
	return nil
}
