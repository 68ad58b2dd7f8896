// Package submitlog keeps an append-only CSV audit trail of submission and
// finalize attempts, including the idempotency key each attempt carried.
package submitlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Action distinguishes log entries.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionFinalize Action = "finalize"
)

// Entry is one row in the submission log.
type Entry struct {
	Timestamp      time.Time
	Action         Action
	InvoiceID      int
	InvoiceNumber  string
	IdempotencyKey string
	Status         string // invoice status on success, "error" on failure
	Detail         string
}

// Header is the CSV header for submissions.csv.
const Header = "timestamp,action,invoice_id,invoice_number,idempotency_key,status,detail"

const (
	numFields = 7
	logFile   = "submissions.csv"
	colTime   = 0
	colAction = 1
	colID     = 2
	colNumber = 3
	colKey    = 4
	colStatus = 5
	colDetail = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = string(e.Action)
	row[colID] = strconv.Itoa(e.InvoiceID)
	row[colNumber] = e.InvoiceNumber
	row[colKey] = e.IdempotencyKey
	row[colStatus] = e.Status
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing invoice_id %q: %w", record[colID], err)
	}

	return Entry{
		Timestamp:      ts,
		Action:         Action(record[colAction]),
		InvoiceID:      id,
		InvoiceNumber:  record[colNumber],
		IdempotencyKey: record[colKey],
		Status:         record[colStatus],
		Detail:         record[colDetail],
	}, nil
}

// Append writes entries to <dir>/submissions.csv, creating the file and
// header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening submission log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dir>/submissions.csv. Returns nil if the
// file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening submission log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// LastSubmitted returns the most recent successful submit entry.
func LastSubmitted(dir string) (Entry, bool, error) {
	entries, err := Read(dir)
	if err != nil {
		return Entry{}, false, err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Action == ActionSubmit && entries[i].Status != "error" {
			return entries[i], true, nil
		}
	}
	return Entry{}, false, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading submission log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
