package journal

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes entries with an id,date,trades_count,profit header.
func WriteCSV(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := gocsv.Marshal(&entries, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ReadCSV reads rows written by WriteCSV. The id column may be empty.
func ReadCSV(r io.Reader) ([]Entry, error) {
	var rows []Entry
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
