package journal

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() Clock { return ClockFunc(func() time.Time { return fixedNow }) }

// seqIDs returns an ID generator yielding E1, E2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("E%d", n)
	}
}

func newTestEngine(t *testing.T, store Store) *Engine {
	t.Helper()
	if store == nil {
		store = NewMemoryStore()
	}
	e, err := New(store, WithClock(fixedClock()), WithIDGenerator(seqIDs()))
	require.NoError(t, err)
	return e
}

var errDiskFull = errors.New("disk full")

// failingStore wraps a MemoryStore and fails every Save once armed.
type failingStore struct {
	*MemoryStore
	fail bool
}

func (s *failingStore) Save(key, value string) error {
	if s.fail {
		return errDiskFull
	}
	return s.MemoryStore.Save(key, value)
}
