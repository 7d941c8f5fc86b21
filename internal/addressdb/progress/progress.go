// Package progress renders block file scanning progress.
package progress

import (
	"io"
	"os"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Bar renders a proportional progress bar.
type Bar struct {
	writer io.Writer
	logger *zap.Logger
	bar    *pterm.ProgressbarPrinter
}

// NewBar creates a bar writing to w.
func NewBar(w io.Writer, logger *zap.Logger) *Bar {
	return &Bar{writer: w, logger: logger.Named("progress")}
}

// Start draws an empty bar for total files.
func (b *Bar) Start(total int) {
	if total <= 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithWriter(b.writer).
		WithTotal(total).
		WithTitle("Scanning block files").
		WithShowCount(true).
		WithShowElapsedTime(true).
		Start()
	if err != nil {
		b.logger.Warn("progress bar unavailable", zap.Error(err))
		return
	}
	b.bar = bar
}

// Update moves the bar to current completed files.
func (b *Bar) Update(current int, file string) {
	if b.bar == nil {
		return
	}
	if delta := current - b.bar.Current; delta > 0 {
		b.bar.Add(delta)
	}
	b.bar.UpdateTitle(file)
}

// Finish removes the bar from the screen.
func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	if _, err := b.bar.Stop(); err != nil {
		b.logger.Warn("stop progress bar", zap.Error(err))
	}
	b.bar = nil
}

// Text prints one line per completed file, for logs and pipes.
type Text struct {
	writer io.Writer
	total  int
}

// NewText creates a text reporter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{writer: w}
}

func (t *Text) Start(total int) {
	t.total = total
}

func (t *Text) Update(current int, file string) {
	pterm.Fprintln(t.writer, pterm.Sprintf("[%d/%d] %s", current, t.total, file))
}

func (t *Text) Finish() {}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}

// Reporter is the common surface of Bar, Text and Nop.
type Reporter interface {
	Start(total int)
	Update(current int, file string)
	Finish()
}

// ForTerminal picks a bar when stdout is a terminal, plain text otherwise, and nothing
// when disabled.
func ForTerminal(disabled bool, logger *zap.Logger) Reporter {
	switch {
	case disabled:
		return Nop{}
	case term.IsTerminal(int(os.Stdout.Fd())):
		return NewBar(os.Stdout, logger)
	default:
		return NewText(os.Stdout)
	}
}
