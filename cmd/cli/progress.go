package cli

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/anstrom/portmerge/internal/progress"
)

// ptermTracker draws extraction progress with pterm progress bars.
type ptermTracker struct {
	out   io.Writer
	color bool
}

func newProgressTracker(out io.Writer, color bool) progress.Tracker {
	return ptermTracker{out: out, color: color}
}

// Start begins a bar; empty work gets no bar at all.
func (t ptermTracker) Start(title string, total int) progress.Bar {
	if total <= 0 {
		return progress.Nop{}.Start(title, total)
	}
	bar, err := t.printer(title, total).Start()
	if err != nil {
		return progress.Nop{}.Start(title, total)
	}
	return &ptermBar{bar: bar}
}

// printer configures a bar. Without color the bar keeps only plain parts,
// since pterm colors the counter and percentage through its global setting.
func (t ptermTracker) printer(title string, total int) *pterm.ProgressbarPrinter {
	p := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithWriter(t.out).
		WithRemoveWhenDone(true)
	if !t.color {
		p = p.WithTitleStyle(pterm.NewStyle()).
			WithBarStyle(pterm.NewStyle()).
			WithBarFiller(" ").
			WithShowCount(false).
			WithShowPercentage(false)
	}
	return p
}

type ptermBar struct {
	bar *pterm.ProgressbarPrinter
}

func (b *ptermBar) Increment() {
	b.bar.Increment()
}

func (b *ptermBar) Stop() {
	_, _ = b.bar.Stop()
}
