package ui

import (
	"fmt"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"plgrader/internal/domain"
)

// maxConsoleLines caps the console output shown in the details pane
const maxConsoleLines = 500

// ReportViewer browses the suites, problems and console output of a report
type ReportViewer struct{}

// NewReportViewer creates a new ReportViewer
func NewReportViewer() *ReportViewer {
	return &ReportViewer{}
}

type viewerPage struct {
	title   string
	stats   string
	details string
}

// View displays report in an interactive TUI
func (rv *ReportViewer) View(report *domain.GradeReport) error {
	pages := buildPages(report)
	if len(pages) == 0 {
		color.Green("✓ Report is empty, nothing to view")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, page := range pages {
		list.AddItem(page.title, "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Grade Report (%d suites, %.1f%%) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ",
			len(report.TestSuites), report.Percentage))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(pages) {
			statsView.SetText(pages[index].stats)
			detailsView.SetText(pages[index].details).ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildPages builds the list entries of the viewer: one per suite, then problems and console output
func buildPages(report *domain.GradeReport) []viewerPage {
	pages := make([]viewerPage, 0, len(report.TestSuites)+2)
	for i, suite := range report.TestSuites {
		pages = append(pages, viewerPage{
			title:   suiteTitle(i+1, suite),
			stats:   suiteStats(suite),
			details: suiteDetails(suite),
		})
	}
	if len(report.Errors) > 0 {
		pages = append(pages, viewerPage{
			title:   fmt.Sprintf("[red]Problems (%d)[white]", len(report.Errors)),
			stats:   fmt.Sprintf("[cyan]problems:[white] [yellow]%d[white]", len(report.Errors)),
			details: errorDetails(report.Errors),
		})
	}
	if len(report.ConsoleOutput) > 0 {
		pages = append(pages, viewerPage{
			title:   fmt.Sprintf("[yellow]Console output (%d)[white]", len(report.ConsoleOutput)),
			stats:   fmt.Sprintf("[cyan]console entries:[white] [yellow]%d[white]", len(report.ConsoleOutput)),
			details: consoleDetails(report.ConsoleOutput),
		})
	}
	return pages
}

func suiteTitle(number int, suite domain.SuiteReport) string {
	mark := "[green]✓"
	if suite.Grade < 100 {
		mark = "[red]✗"
	}
	return fmt.Sprintf("%s [yellow]%d.[white] %s", mark, number, tview.Escape(suite.Name))
}

func suiteStats(suite domain.SuiteReport) string {
	stats := StatsOf(suite)
	return fmt.Sprintf("[cyan]file:[white] [yellow]%s[white]\n[cyan]grade:[white] %.1f%% (%d/%d points, %d passed, %d failed, %d skipped)",
		tview.Escape(suite.File), suite.Grade, stats.Granted, stats.Points, stats.Passed, stats.Failed, stats.Skipped)
}

func suiteDetails(suite domain.SuiteReport) string {
	if len(suite.UnitTests) == 0 {
		return "[gray]No tests reported[white]\n"
	}

	var builder strings.Builder
	for _, u := range suite.UnitTests {
		switch u.Status {
		case domain.StatusPassed:
			fmt.Fprintf(&builder, "[green]✓ %s[white]", tview.Escape(u.Name))
		case domain.StatusFailed:
			fmt.Fprintf(&builder, "[red]✗ %s[white]", tview.Escape(u.Name))
		default:
			fmt.Fprintf(&builder, "[gray]- %s[white]", tview.Escape(u.Name))
		}
		fmt.Fprintf(&builder, " [gray](weight %d)[white]\n", u.Weight)
		if u.ExceptionClass != "" {
			fmt.Fprintf(&builder, "    [cyan]%s[white]\n", tview.Escape(u.ExceptionClass))
		}
		if u.ExceptionMessage != "" {
			fmt.Fprintf(&builder, "    [yellow]%s[white]\n", tview.Escape(stripansi.Strip(u.ExceptionMessage)))
		}
	}
	return builder.String()
}

func errorDetails(errors []domain.ErrorEntry) string {
	var builder strings.Builder
	for _, e := range errors {
		fmt.Fprintf(&builder, "[yellow]%s[white]\n", tview.Escape(ErrorLocation(e)))
		if e.Message != "" {
			fmt.Fprintf(&builder, "%s\n", tview.Escape(stripansi.Strip(e.Message)))
		}
		if e.Hint != "" {
			fmt.Fprintf(&builder, "[gray]%s[white]\n", tview.Escape(e.Hint))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func consoleDetails(entries []string) string {
	var builder strings.Builder
	for i, entry := range entries {
		if i == maxConsoleLines {
			fmt.Fprintf(&builder, "[gray]... and %d more entries[white]\n", len(entries)-maxConsoleLines)
			break
		}
		fmt.Fprintf(&builder, "%s\n", tview.Escape(stripansi.Strip(entry)))
	}
	return builder.String()
}
