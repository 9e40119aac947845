package journal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rustyeddy/tradejournal/id"
	"github.com/sirupsen/logrus"
)

// Engine owns the journal state. It reads the Store once in New and writes
// the affected key back synchronously on every mutation; a failed write
// leaves the in-memory state untouched.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	store Store
	clock Clock
	newID func() string
	log   *logrus.Entry

	defaultBaseline float64

	baseline float64
	entries  []Entry // descending by date
	selected Date
}

// Option configures an Engine.
type Option func(*Engine)

func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithIDGenerator replaces the ULID generator used for new entries.
func WithIDGenerator(f func() string) Option { return func(e *Engine) { e.newID = f } }

func WithLogger(l *logrus.Entry) Option { return func(e *Engine) { e.log = l } }

// WithDefaultBaseline sets the baseline used when the store has none.
func WithDefaultBaseline(v float64) Option { return func(e *Engine) { e.defaultBaseline = v } }

// New hydrates an Engine from store.
func New(store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:           store,
		clock:           SystemClock{},
		newID:           id.New,
		log:             logrus.WithField("component", "journal"),
		defaultBaseline: DefaultBaseline,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.hydrate(); err != nil {
		return nil, err
	}
	e.selected = e.today()
	return e, nil
}

func (e *Engine) hydrate() error {
	e.baseline = e.defaultBaseline

	raw, ok, err := e.store.Load(BaselineKey)
	if err != nil {
		return fmt.Errorf("load %s: %w", BaselineKey, err)
	}
	if raw = strings.TrimSpace(raw); ok && raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parse %s %q: %w", BaselineKey, raw, err)
		}
		e.baseline = v
	}

	raw, ok, err = e.store.Load(EntriesKey)
	if err != nil {
		return fmt.Errorf("load %s: %w", EntriesKey, err)
	}
	if raw = strings.TrimSpace(raw); ok && raw != "" {
		var loaded []Entry
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			return fmt.Errorf("parse %s: %w", EntriesKey, err)
		}
		for i, ent := range loaded {
			if err := checkEntry(ent); err != nil {
				return fmt.Errorf("parse %s: row %d: %w", EntriesKey, i+1, err)
			}
		}
		e.entries = normalize(loaded)
	}

	e.log.WithFields(logrus.Fields{
		"baseline": e.baseline,
		"entries":  len(e.entries),
	}).Debug("journal hydrated")
	return nil
}

// UpsertEntry records the outcome for date. An existing entry for the same
// date is replaced in place and keeps its ID.
func (e *Engine) UpsertEntry(date Date, tradesCount int, profit float64) (Entry, error) {
	ent := Entry{Date: date, TradesCount: tradesCount, Profit: profit}
	if err := checkEntry(ent); err != nil {
		return Entry{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, ent, replaced := upsert(e.entries, ent, e.newID)
	if err := e.saveEntries(next); err != nil {
		return Entry{}, err
	}
	e.entries = next

	e.log.WithFields(logrus.Fields{
		"date":     date.String(),
		"trades":   tradesCount,
		"profit":   profit,
		"replaced": replaced,
	}).Debug("entry recorded")
	return ent, nil
}

// Import upserts every entry in one persisted step. A row whose date repeats
// overrides the earlier row. New dates keep the imported ID unless it is empty
// or already taken.
func (e *Engine) Import(rows []Entry) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.entries
	for i, r := range rows {
		if err := checkEntry(r); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		gen := e.newID
		if r.ID != "" && !hasID(next, r.ID) {
			rid := r.ID
			gen = func() string { return rid }
		}
		next, _, _ = upsert(next, r, gen)
	}
	if err := e.saveEntries(next); err != nil {
		return 0, err
	}
	e.entries = next

	e.log.WithField("rows", len(rows)).Debug("entries imported")
	return len(rows), nil
}

// SetAccountBaseline replaces the baseline. Any value is accepted.
func (e *Engine) SetAccountBaseline(v float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Save(BaselineKey, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		e.log.WithError(err).Error("save baseline")
		return fmt.Errorf("save %s: %w", BaselineKey, err)
	}
	e.baseline = v
	e.log.WithField("baseline", v).Debug("baseline updated")
	return nil
}

func (e *Engine) AccountBaseline() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseline
}

// Entries returns the history listing, newest first.
func (e *Engine) Entries() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Entry(nil), e.entries...)
}

// Entry returns the entry recorded for date, if any.
func (e *Engine) Entry(date Date) (Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := indexOf(e.entries, date); i >= 0 {
		return e.entries[i], true
	}
	return Entry{}, false
}

// State returns a copy of the persisted state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		AccountBaseline: e.baseline,
		Entries:         append([]Entry(nil), e.entries...),
	}
}

// Draft holds the values a record form starts with for a given date.
type Draft struct {
	Date        Date
	TradesCount int
	Profit      float64
	Existing    bool
}

// Draft returns the existing values for date, or zeros.
func (e *Engine) Draft(date Date) Draft {
	d := Draft{Date: date}
	if ent, ok := e.Entry(date); ok {
		d.TradesCount, d.Profit, d.Existing = ent.TradesCount, ent.Profit, true
	}
	return d
}

// Today is the clock's current calendar day.
func (e *Engine) Today() Date { return e.today() }

func (e *Engine) today() Date { return DateOf(e.clock.Now()) }

// Selected is the date the next record is for. It starts as today.
func (e *Engine) Selected() Date {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

func (e *Engine) Select(d Date) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = d
}

func (e *Engine) saveEntries(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", EntriesKey, err)
	}
	if err := e.store.Save(EntriesKey, string(b)); err != nil {
		e.log.WithError(err).Error("save entries")
		return fmt.Errorf("save %s: %w", EntriesKey, err)
	}
	return nil
}

// upsert returns a new slice with ent applied; entries is never modified.
func upsert(entries []Entry, ent Entry, newID func() string) ([]Entry, Entry, bool) {
	next := append([]Entry(nil), entries...)
	if i := indexOf(next, ent.Date); i >= 0 {
		ent.ID = next[i].ID
		next[i] = ent
		return next, ent, true
	}

	ent.ID = newID()
	i := sort.Search(len(next), func(i int) bool { return !next[i].Date.After(ent.Date) })
	next = append(next, Entry{})
	copy(next[i+1:], next[i:])
	next[i] = ent
	return next, ent, false
}

// checkEntry enforces the invariants every stored entry must hold.
func checkEntry(ent Entry) error {
	if ent.Date.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidDate)
	}
	if ent.TradesCount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTrades, ent.TradesCount)
	}
	return nil
}

func indexOf(entries []Entry, d Date) int {
	for i := range entries {
		if entries[i].Date == d {
			return i
		}
	}
	return -1
}

func hasID(entries []Entry, s string) bool {
	for i := range entries {
		if entries[i].ID == s {
			return true
		}
	}
	return false
}

// normalize drops duplicate dates (the last occurrence wins) and sorts newest first.
func normalize(in []Entry) []Entry {
	byDate := make(map[Date]int, len(in))
	out := make([]Entry, 0, len(in))
	for _, ent := range in {
		if i, ok := byDate[ent.Date]; ok {
			out[i] = ent
			continue
		}
		byDate[ent.Date] = len(out)
		out = append(out, ent)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
