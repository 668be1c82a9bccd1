package output

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

const (
	progressTemplate = `{{string . "prefix"}}{{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }} {{etime . }}`
	refreshRate      = 100 * time.Millisecond
)

// ProgressBar draws reconciliation progress on a terminal.
// It is a no-op when the writer is not a terminal.
type ProgressBar struct {
	writer  io.Writer
	enabled bool
	bar     *pb.ProgressBar
}

// NewProgressBar creates a progress bar writing to w
func NewProgressBar(w io.Writer) *ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	return &ProgressBar{
		writer:  w,
		enabled: IsTerminal(w),
	}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Enabled reports whether the bar will draw anything
func (p *ProgressBar) Enabled() bool {
	return p.enabled
}

// Start begins a bar for total files
func (p *ProgressBar) Start(total int) {
	if !p.enabled || total == 0 {
		return
	}

	bar := pb.ProgressBarTemplate(progressTemplate).New(total)
	bar.SetWriter(p.writer)
	bar.SetRefreshRate(refreshRate)
	bar.Set("prefix", "Comparing ")

	// Keep the bar on one line when the terminal width is known
	if file, ok := p.writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			bar.SetWidth(width)
		}
	}

	p.bar = bar.Start()
}

// Increment advances the bar by one file
func (p *ProgressBar) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish completes and clears the bar
func (p *ProgressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
