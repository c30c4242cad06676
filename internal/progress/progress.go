// Package progress defines the progress reporting hooks used by the extractors.
// The CLI supplies a terminal implementation; everything else uses Nop.
package progress

// Bar tracks one unit of work with a known total.
type Bar interface {
	Increment()
	Stop()
}

// Tracker starts progress bars.
type Tracker interface {
	Start(title string, total int) Bar
}

// Nop is a Tracker that reports nothing.
type Nop struct{}

// Start returns a Bar that does nothing.
func (Nop) Start(string, int) Bar { return nopBar{} }

type nopBar struct{}

func (nopBar) Increment() {}
func (nopBar) Stop()      {}

// OrNop returns t, or Nop when t is nil.
func OrNop(t Tracker) Tracker {
	if t == nil {
		return Nop{}
	}
	return t
}
