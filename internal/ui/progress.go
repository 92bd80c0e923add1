package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"plgrader/internal/domain"
)

// ProgressBar shows suite progress on stderr while a submission is graded
type ProgressBar struct {
	bar      *progressbar.ProgressBar
	done     int
	complete int
	partial  int
}

// NewProgressBar creates an idle progress bar; Start sizes it
func NewProgressBar() *ProgressBar {
	return &ProgressBar{}
}

// Start creates the bar for count suites
func (p *ProgressBar) Start(count int) {
	p.bar = progressbar.NewOptions(count,
		progressbar.OptionSetDescription(p.describe()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Advance counts a graded suite
func (p *ProgressBar) Advance(suite domain.SuiteReport) {
	p.done++
	if suite.Grade == 100 {
		p.complete++
	} else {
		p.partial++
	}
	if p.bar == nil {
		return
	}
	p.bar.Set(p.done)
	p.bar.Describe(p.describe())
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

func (p *ProgressBar) describe() string {
	return color.CyanString("Grading suites: ") +
		color.GreenString("[full marks: %d", p.complete) +
		" | " +
		color.RedString("partial: %d]", p.partial)
}
