// Package journal keeps a per-day trading journal: one entry per calendar date,
// an account baseline, derived statistics and a month calendar projection.
package journal

import (
	"errors"
	"time"
)

// Keys under which the journal state is persisted.
const (
	BaselineKey = "trades_ai_account_size"
	EntriesKey  = "trades_ai_journal_entries"
)

// DefaultBaseline is the starting capital used when none has been stored.
const DefaultBaseline = 10000.0

// ErrNegativeTrades is returned when an entry is recorded with a negative trade count.
var ErrNegativeTrades = errors.New("trades count must not be negative")

// Entry is one day's recorded trading outcome.
type Entry struct {
	ID          string  `json:"id" csv:"id"`
	Date        Date    `json:"date" csv:"date"`
	TradesCount int     `json:"tradesCount" csv:"trades_count"`
	Profit      float64 `json:"profit" csv:"profit"`
}

// State is a snapshot of everything the journal persists. Entries are in
// descending date order.
type State struct {
	AccountBaseline float64
	Entries         []Entry
}

// Store is the durable key/value collaborator the engine hydrates from and
// writes through to.
type Store interface {
	// Load returns the stored value for key, or ok=false if it was never saved.
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// Clock supplies the current time, used for "today" and the default selection.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
