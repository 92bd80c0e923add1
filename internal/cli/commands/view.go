package commands

import (
	"github.com/spf13/cobra"

	"plgrader/internal/config"
	"plgrader/internal/ui"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config *config.Config
	viewer ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config) *ViewCommand {
	return &ViewCommand{
		config: cfg,
		viewer: ui.NewReportViewer(),
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := reportStorage(vc.config.Flags.Report).Load()
	if err != nil {
		return err
	}

	return vc.viewer.View(report)
}
