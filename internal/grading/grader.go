// Package grading turns runner output into weighted grade reports.
package grading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"plgrader/internal/discovery"
	"plgrader/internal/domain"
	"plgrader/internal/execution"
	"plgrader/internal/parser"
	"plgrader/internal/workspace"
)

var stderrLineNo = regexp.MustCompile(`\.pl:(\d+)`)

// Progress receives suite completion events while a submission is graded
type Progress interface {
	Start(total int)
	Advance(suite domain.SuiteReport)
	Finish()
}

// Grader runs every test suite of a submission and assembles the report
type Grader struct {
	stager    *workspace.Stager
	lock      *workspace.Lock
	scanner   *discovery.Scanner
	executor  execution.Executor
	extractor parser.Extractor
	progress  Progress
}

// NewGrader creates a new Grader. lock may be nil.
func NewGrader(
	stager *workspace.Stager,
	lock *workspace.Lock,
	scanner *discovery.Scanner,
	executor execution.Executor,
	extractor parser.Extractor,
) *Grader {
	return &Grader{
		stager:    stager,
		lock:      lock,
		scanner:   scanner,
		executor:  executor,
		extractor: extractor,
	}
}

// SetProgress sets the progress reporter
func (g *Grader) SetProgress(progress Progress) {
	g.progress = progress
}

// Grade stages the submission, runs each test file and builds the report.
// Only staging failures are returned as errors; everything else is reported in the report's errors.
func (g *Grader) Grade(ctx context.Context, req domain.SubmissionRequest) (*domain.GradeReport, error) {
	report := domain.NewGradeReport()

	files, err := ReadSources(req.ContentRoot)
	report.Files = files
	if err != nil {
		slog.Warn("could not read all sources", "root", req.ContentRoot, "err", err)
	}

	if g.lock != nil {
		if err := g.lock.Acquire(ctx); err != nil {
			return nil, err
		}
		slog.Debug("workspace locked", "lock", g.lock.Path())
		defer func() {
			if err := g.lock.Release(); err != nil {
				slog.Warn("releasing workspace lock", "err", err)
			}
		}()
	}

	staging, err := g.stager.Stage(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("workspace staged",
		"root", staging.Root,
		"content_files", len(staging.ContentFiles),
		"test_files", len(staging.TestFiles))

	var collision *domain.FileCollisionError
	if errors.As(staging.CollisionError(), &collision) {
		for _, path := range collision.Paths {
			report.AddError(domain.ErrorEntry{
				FileName: path,
				Hint:     fmt.Sprintf(domain.HintRename, path),
			})
		}
		zero := 0
		report.TotalGrade = &zero
		slog.Info("not grading", "err", collision)
		return report, nil
	}

	tests := g.scanner.Match(staging.TestFiles)
	if g.progress != nil {
		g.progress.Start(len(tests))
		defer g.progress.Finish()
	}

	var total Tally
	for _, test := range tests {
		if err := ctx.Err(); err != nil {
			report.AddError(domain.ErrorEntry{
				FileName: test.Path,
				Message:  fmt.Sprintf("grading interrupted: %v", err),
			})
			break
		}

		suite, tally := g.gradeSuite(ctx, test, report)
		total = total.Add(tally)
		report.TestSuites = append(report.TestSuites, suite)
		if g.progress != nil {
			g.progress.Advance(suite)
		}
		slog.Info("graded suite",
			"file", test.Path,
			"code", test.Code,
			"grade", suite.Grade,
			"passed", suite.PassedCount,
			"tests", tally.Tests)
	}

	report.Percentage = total.Grade()
	return report, nil
}

// gradeSuite runs one test file and records its console output and anomalies in report
func (g *Grader) gradeSuite(ctx context.Context, test domain.TestFile, report *domain.GradeReport) (domain.SuiteReport, Tally) {
	suite := domain.SuiteReport{
		File:      test.Path,
		Name:      test.Name,
		UnitTests: []domain.UnitTestReport{},
	}

	started := time.Now()
	run, err := g.executor.Run(ctx, test)
	suite.StartDate = unixSeconds(started)
	suite.EndDate = unixSeconds(time.Now())

	var tally Tally
	if err != nil {
		report.AddError(domain.ErrorEntry{
			FileName: test.Path,
			Message:  err.Error(),
			Hint:     domain.HintInternal,
		})
	} else {
		report.ConsoleOutput = append(report.ConsoleOutput,
			fmt.Sprintf("file: %s stdout:\n%s", test.Path, run.Stdout),
			fmt.Sprintf("file: %s stderr:\n%s", test.Path, run.Stderr))

		for _, entry := range StderrEntries(test, run.Stderr) {
			report.AddError(entry)
		}

		rows, err := g.extractRows(run.Stdout)
		if err != nil {
			report.AddError(domain.ErrorEntry{
				FileName: test.Path,
				Message:  err.Error(),
				Hint:     domain.HintInternal,
			})
		} else {
			suite.UnitTests, tally = Aggregate(rows)
		}
	}

	if tally.Points == 0 {
		report.AddError(domain.ErrorEntry{
			FileName: domain.ZeroSuiteFileRef,
			Hint:     domain.HintNoTestsRun,
		})
	}
	suite.Grade = tally.Grade()
	suite.PassedCount = tally.Passed
	return suite, tally
}

func (g *Grader) extractRows(stdout string) ([]domain.ResultRow, error) {
	records, err := g.extractor.Extract(stdout)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(records)
}

// StderrEntries turns every stderr line into an error entry.
// The empty remainder after a trailing newline is not a line.
func StderrEntries(test domain.TestFile, stderr string) []domain.ErrorEntry {
	if stderr == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")

	entries := make([]domain.ErrorEntry, 0, len(lines))
	for _, line := range lines {
		entry := domain.ErrorEntry{
			FileName: test.Path,
			Message:  line,
		}
		if strings.HasPrefix(line, "ERROR") {
			entry.Hint = domain.HintRunLocally
		}
		if m := stderrLineNo.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				entry.LineNo = n
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// ErrorReport builds the report returned when a submission could not be graded at all.
// The submission scores 0 and every cause is listed as an error.
func ErrorReport(req domain.SubmissionRequest, err error) *domain.GradeReport {
	report := domain.NewGradeReport()
	if files, readErr := ReadSources(req.ContentRoot); readErr == nil {
		report.Files = files
	}

	var copyErr *domain.AggregateCopyError
	if errors.As(err, &copyErr) {
		for _, f := range copyErr.Failures {
			report.AddError(domain.ErrorEntry{
				FileName: f.Source,
				Message:  fmt.Sprintf("could not copy to %s: %s", f.Destination, f.Reason),
				Hint:     domain.HintInternal,
			})
		}
		return report
	}

	report.AddError(domain.ErrorEntry{
		FileName: domain.ZeroSuiteFileRef,
		Message:  err.Error(),
		Hint:     domain.HintInternal,
	})
	return report
}
