package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"plgrader/internal/domain"
)

// Formatter formats and displays reports and test lists
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintTestList prints the test files a grading run would execute
func (f *Formatter) PrintTestList(tests []domain.TestFile) {
	fmt.Fprintln(f.out, color.GreenString("Found %d test file(s):\n", len(tests)))
	for i, test := range tests {
		connector := "├──"
		if i == len(tests)-1 {
			connector = "└──"
		}
		fmt.Fprintf(f.out, "%s %s %s\n",
			color.CyanString(connector),
			color.YellowString("#%d", test.Code),
			test.Path)
	}
}

// PrintSummary prints the suite table and the report's errors
func (f *Formatter) PrintSummary(report *domain.GradeReport) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                         Grade Summary                         ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(f.out)

	fmt.Fprint(f.out, SummaryTable(report))
	fmt.Fprintln(f.out)

	if report.TotalGrade != nil {
		fmt.Fprintln(f.out, color.RedString("✗ Not graded: total grade %d", *report.TotalGrade))
	}
	if report.Clean() {
		fmt.Fprintln(f.out, color.GreenString("✓ No problems detected"))
		return
	}

	fmt.Fprintln(f.out, color.RedString("✗ %d problem(s) detected:", len(report.Errors)))
	for _, e := range report.Errors {
		fmt.Fprintf(f.out, "  %s %s\n", color.YellowString(ErrorLocation(e)), errorText(e))
	}
}

// SummaryTable renders the suites of a report as a table
func SummaryTable(report *domain.GradeReport) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Suite", "Tests", "Passed", "Failed", "Skipped", "Points", "Grade"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suite", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Points", Align: text.AlignRight},
		{Name: "Grade", Align: text.AlignRight},
	})

	var total SuiteStats
	for _, suite := range report.TestSuites {
		stats := StatsOf(suite)
		total = total.Add(stats)
		t.AppendRow(table.Row{
			suite.Name,
			stats.Tests,
			stats.Passed,
			stats.Failed,
			stats.Skipped,
			fmt.Sprintf("%d/%d", stats.Granted, stats.Points),
			formatGrade(suite.Grade),
		})
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		total.Tests,
		total.Passed,
		total.Failed,
		total.Skipped,
		fmt.Sprintf("%d/%d", total.Granted, total.Points),
		formatGrade(report.Percentage),
	})
	t.SetStyle(table.StyleLight)
	return t.Render() + "\n"
}

// SuiteStats counts the unit tests of a suite by status
type SuiteStats struct {
	Tests   int
	Passed  int
	Failed  int
	Skipped int
	Points  int
	Granted int
}

// StatsOf counts the unit tests of suite
func StatsOf(suite domain.SuiteReport) SuiteStats {
	var s SuiteStats
	for _, u := range suite.UnitTests {
		s.Tests++
		s.Points += u.Weight
		switch u.Status {
		case domain.StatusPassed:
			s.Passed++
			s.Granted += u.Weight
		case domain.StatusFailed:
			s.Failed++
		default:
			s.Skipped++
		}
	}
	return s
}

// Add returns the sum of two stats
func (s SuiteStats) Add(o SuiteStats) SuiteStats {
	return SuiteStats{
		Tests:   s.Tests + o.Tests,
		Passed:  s.Passed + o.Passed,
		Failed:  s.Failed + o.Failed,
		Skipped: s.Skipped + o.Skipped,
		Points:  s.Points + o.Points,
		Granted: s.Granted + o.Granted,
	}
}

// ErrorLocation formats the file and line of an error entry
func ErrorLocation(e domain.ErrorEntry) string {
	if e.LineNo > 0 {
		return fmt.Sprintf("%s:%d", e.FileName, e.LineNo)
	}
	return e.FileName
}

func errorText(e domain.ErrorEntry) string {
	parts := make([]string, 0, 2)
	if msg := strings.TrimSpace(stripansi.Strip(e.Message)); msg != "" {
		parts = append(parts, msg)
	}
	if e.Hint != "" {
		parts = append(parts, "("+e.Hint+")")
	}
	return strings.Join(parts, " ")
}

func formatGrade(grade float64) string {
	return fmt.Sprintf("%.1f%%", grade)
}
