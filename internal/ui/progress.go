package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows how many test files have been parsed
type ProgressBar struct {
	mu         sync.Mutex
	bar        *progressbar.ProgressBar
	parsed     int
	unreadable int
}

// NewProgressBar creates a progress bar for count files drawn on w
func NewProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Done records one finished file. Safe for concurrent use.
func (p *ProgressBar) Done(readable bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if readable {
		p.parsed++
	} else {
		p.unreadable++
	}
	p.bar.Describe(describe(p.parsed, p.unreadable))
	_ = p.bar.Add(1)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}

func describe(parsed, unreadable int) string {
	return color.CyanString("Parsing tests: ") +
		color.GreenString("[parsed: %d", parsed) +
		" | " +
		color.RedString("unreadable: %d]", unreadable)
}
