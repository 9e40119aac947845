package journal

import (
	"fmt"
	"time"
)

// Cell is one calendar day in a MonthGrid.
type Cell struct {
	Day   int
	Date  Date
	Entry *Entry // nil when nothing is recorded for Date
	Today bool
}

// MonthGrid is a month laid out for a Sunday-first calendar. Cells starts
// with Offset nil padding cells followed by one cell per day; the last week
// is not padded.
type MonthGrid struct {
	Year   int
	Month  time.Month
	Offset int
	Cells  []*Cell
}

// Days returns the non-padding cells.
func (g MonthGrid) Days() []*Cell { return g.Cells[g.Offset:] }

// Weeks splits Cells into rows of seven; the final row may be short.
func (g MonthGrid) Weeks() [][]*Cell {
	var out [][]*Cell
	for i := 0; i < len(g.Cells); i += 7 {
		j := min(i+7, len(g.Cells))
		out = append(out, g.Cells[i:j])
	}
	return out
}

// MonthGrid builds the calendar for year and zero-based month. Out of range
// months roll over into adjacent years.
func (e *Engine) MonthGrid(year, month int) MonthGrid {
	today := e.today()

	e.mu.Lock()
	defer e.mu.Unlock()
	return BuildMonthGrid(MonthOf(year, month), e.entries, today)
}

// Grid is MonthGrid for a Month.
func (e *Engine) Grid(m Month) MonthGrid { return e.MonthGrid(m.Year, m.Index()) }

// BuildMonthGrid lays out m, attaching any entry whose date falls in it and
// marking today.
func BuildMonthGrid(m Month, entries []Entry, today Date) MonthGrid {
	byDate := make(map[Date]Entry, len(entries))
	for _, ent := range entries {
		byDate[ent.Date] = ent
	}

	first := m.First()
	g := MonthGrid{
		Year:   m.Year,
		Month:  m.Month,
		Offset: int(first.Weekday()),
	}
	days := m.Days()
	g.Cells = make([]*Cell, g.Offset, g.Offset+days)
	for d := 1; d <= days; d++ {
		date := NewDate(m.Year, m.Month, d)
		c := &Cell{Day: d, Date: date, Today: date == today}
		if ent, ok := byDate[date]; ok {
			c.Entry = &ent
		}
		g.Cells = append(g.Cells, c)
	}
	return g
}

// Month identifies a calendar month for navigation.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf normalizes a year and zero-based month; 12 is January of the next
// year and -1 is December of the previous one.
func MonthOf(year, month int) Month {
	t := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// CurrentMonth is the month containing the clock's today.
func CurrentMonth(c Clock) Month {
	d := DateOf(c.Now())
	return Month{Year: d.Year(), Month: d.Month()}
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Index is the zero-based month number used by MonthGrid.
func (m Month) Index() int { return int(m.Month) - 1 }

func (m Month) Add(n int) Month { return MonthOf(m.Year, m.Index()+n) }
func (m Month) Next() Month { return m.Add(1) }
func (m Month) Prev() Month { return m.Add(-1) }

func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }

// Days returns the number of days in m.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }
