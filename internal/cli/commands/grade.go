package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"plgrader/internal/config"
	"plgrader/internal/discovery"
	"plgrader/internal/domain"
	"plgrader/internal/execution"
	"plgrader/internal/grading"
	"plgrader/internal/parser"
	"plgrader/internal/storage"
	"plgrader/internal/ui"
	"plgrader/internal/workspace"
)

// GradeCommand handles the grade command
type GradeCommand struct {
	config *config.Config
}

// NewGradeCommand creates a new GradeCommand
func NewGradeCommand(cfg *config.Config) *GradeCommand {
	return &GradeCommand{config: cfg}
}

// Execute runs the command. Once a request was read the report is always printed and the command succeeds.
func (gc *GradeCommand) Execute(cmd *cobra.Command, args []string) error {
	grader, err := gc.newGrader()
	if err != nil {
		return err
	}

	req, err := gc.readRequest(cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := grader.Grade(ctx, req)
	if err != nil {
		slog.Error("grading failed", "content_root", req.ContentRoot, "test_root", req.TestRoot, "err", err)
		report = grading.ErrorReport(req, err)
	}

	if err := writeReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if path := gc.config.Flags.Save; path != "" {
		if err := reportStorage(path).Save(report); err != nil {
			slog.Error("saving report", "path", path, "err", err)
		}
	}

	if gc.config.ArchiveDSN != "" {
		archive, err := storage.OpenMySQLArchive(gc.config.ArchiveDSN, gc.config.ArchiveTable)
		if err != nil {
			slog.Error("opening report archive", "err", err)
			return nil
		}
		defer archive.Close()
		recordRun(ctx, archive, req, report)
	}
	return nil
}

func (gc *GradeCommand) newGrader() (*grading.Grader, error) {
	cfg := gc.config
	scanner, err := discovery.NewScanner(cfg)
	if err != nil {
		return nil, err
	}

	grader := grading.NewGrader(
		workspace.NewStager(cfg),
		workspace.NewLock(cfg.GetLockPath()),
		scanner,
		execution.NewRunner(cfg),
		parser.NewSimpleReportParser(cfg),
	)
	if cfg.Flags.Progress || isatty.IsTerminal(os.Stderr.Fd()) {
		grader.SetProgress(ui.NewProgressBar())
	}
	return grader, nil
}

func (gc *GradeCommand) readRequest(stdin io.Reader) (domain.SubmissionRequest, error) {
	var req domain.SubmissionRequest

	in := stdin
	if path := gc.config.Flags.Input; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("failed to open request: %w", err)
		}
		defer f.Close()
		in = f
	}

	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request: %w", err)
	}
	if req.ContentRoot == "" || req.TestRoot == "" {
		return req, fmt.Errorf("request needs both contentRoot and testRoot")
	}
	return req, nil
}

// recordRun archives one grading run. Failures are logged and never affect the printed report.
func recordRun(ctx context.Context, archive storage.Archive, req domain.SubmissionRequest, report *domain.GradeReport) bool {
	entry := storage.NewArchiveEntry(req, report)
	if err := archive.Record(ctx, entry); err != nil {
		slog.Error("archiving report", "run_id", entry.RunID, "err", err)
		return false
	}
	slog.Info("report archived", "run_id", entry.RunID)
	return true
}

// reportStorage returns the storage of a report file written by --save
func reportStorage(path string) storage.Storage {
	return storage.NewJSONStorage(path)
}

func writeReport(w io.Writer, report *domain.GradeReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
