package commands

import (
	"github.com/spf13/cobra"

	"plgrader/internal/config"
	"plgrader/internal/ui"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	config *config.Config
}

// NewSummaryCommand creates a new SummaryCommand
func NewSummaryCommand(cfg *config.Config) *SummaryCommand {
	return &SummaryCommand{config: cfg}
}

// Execute runs the command
func (sc *SummaryCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := reportStorage(sc.config.Flags.Report).Load()
	if err != nil {
		return err
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintSummary(report)
	return nil
}
