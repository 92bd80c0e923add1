package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plgrader/internal/config"
	"plgrader/internal/storage"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{config: cfg}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	if mc.config.ArchiveDSN == "" {
		return fmt.Errorf("no archive configured: pass --archive-dsn or set %s", config.EnvArchiveDSN)
	}

	archive, err := storage.OpenMySQLArchive(mc.config.ArchiveDSN, mc.config.ArchiveTable)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := archive.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	color.Green("✓ Archive table %s is ready", mc.config.ArchiveTable)
	return nil
}
