package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"plgrader/internal/domain"
)

func sampleReport() *domain.GradeReport {
	report := domain.NewGradeReport()
	report.TestSuites = []domain.SuiteReport{
		{
			File: "test_pr_basic.pl",
			Name: "test_pr_basic",
			UnitTests: []domain.UnitTestReport{
				{Name: "a", Weight: 10, Status: domain.StatusPassed},
				{Name: "b", Weight: 5, Status: domain.StatusFailed, ExceptionMessage: "\x1b[31mwrong [1,2]\x1b[0m"},
				{Name: "c", Weight: 1, Status: domain.StatusSkipped},
			},
			Grade:       62.5,
			PassedCount: 1,
		},
	}
	report.Percentage = 62.5
	return report
}

func TestStatsOf(t *testing.T) {
	stats := StatsOf(sampleReport().TestSuites[0])
	want := SuiteStats{Tests: 3, Passed: 1, Failed: 1, Skipped: 1, Points: 16, Granted: 10}
	if stats != want {
		t.Errorf("StatsOf() = %+v, want %+v", stats, want)
	}
	if got := stats.Add(stats); got.Points != 32 || got.Tests != 6 {
		t.Errorf("Add() = %+v", got)
	}
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable(sampleReport())
	for _, want := range []string{"test_pr_basic", "TOTAL", "10/16", "62.5%"} {
		if !strings.Contains(out, want) {
			t.Errorf("SummaryTable() missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name   string
		mutate func(r *domain.GradeReport)
		want   []string
	}{
		{
			name:   "clean",
			mutate: func(r *domain.GradeReport) {},
			want:   []string{"Grade Summary", "No problems detected"},
		},
		{
			name: "with problems",
			mutate: func(r *domain.GradeReport) {
				r.AddError(domain.ErrorEntry{
					FileName: "test_pr_basic.pl",
					LineNo:   12,
					Message:  "\x1b[33mWarning: singleton\x1b[0m",
				})
			},
			want: []string{"1 problem(s) detected", "test_pr_basic.pl:12 Warning: singleton"},
		},
		{
			name: "collision",
			mutate: func(r *domain.GradeReport) {
				zero := 0
				r.TotalGrade = &zero
				r.AddError(domain.ErrorEntry{FileName: "a.pl", Hint: "rename"})
			},
			want: []string{"Not graded: total grade 0", "a.pl (rename)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := sampleReport()
			tt.mutate(report)

			var buf bytes.Buffer
			NewFormatter(&buf).PrintSummary(report)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("PrintSummary() missing %q in:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestPrintTestList(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	NewFormatter(&buf).PrintTestList([]domain.TestFile{
		{Path: "test_pr_a.pl", Name: "test_pr_a", Code: 1},
		{Path: "sub/test_pr_b.pl", Name: "sub/test_pr_b", Code: 2},
	})

	out := buf.String()
	for _, want := range []string{"Found 2 test file(s)", "├── #1 test_pr_a.pl", "└── #2 sub/test_pr_b.pl"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintTestList() missing %q in:\n%s", want, out)
		}
	}
}

func TestBuildPages(t *testing.T) {
	report := sampleReport()
	if got := len(buildPages(report)); got != 1 {
		t.Fatalf("buildPages() = %d pages, want 1", got)
	}

	report.AddError(domain.ErrorEntry{FileName: "x.pl"})
	report.ConsoleOutput = []string{"hello [world]"}
	pages := buildPages(report)
	if len(pages) != 3 {
		t.Fatalf("buildPages() = %d pages, want 3", len(pages))
	}
	if !strings.Contains(pages[0].details, "wrong [1,2[]") {
		t.Errorf("suite details not escaped or stripped: %q", pages[0].details)
	}
	if !strings.Contains(pages[2].details, "hello [world[]") {
		t.Errorf("console details not escaped: %q", pages[2].details)
	}
}
