package constants

import "time"

const (
	FetchTimeout    = 20 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	// RequestDelay is the default politeness pause between consecutive
	// profile fetches. A courtesy to the remote site, not a correctness
	// requirement; tests run with zero delay.
	RequestDelay = 1 * time.Second

	// PastFightersLimit bounds the no-repeat window of daily picks.
	PastFightersLimit = 7
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	RunHistoryLimit = 30
)
