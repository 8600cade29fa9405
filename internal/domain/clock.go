package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source behind ProcessedAt stamping. Tests
// and the fixture generator freeze it via SetClock for reproducible output.
var clock = clockwork.NewRealClock()

// SetClock swaps the enrichment time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
