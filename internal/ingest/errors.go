package ingest

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every MalformedRowError.
var ErrMalformed = errors.New("malformed input")

// ErrMissingTable is matched by every MissingTableError.
var ErrMissingTable = errors.New("missing table")

// ErrNotArchive is returned for input that is not a readable zip archive.
var ErrNotArchive = errors.New("not a zip archive")

// MalformedRowError reports a row that cannot be converted into its entity:
// an absent field, an unparseable integer or timestamp, an unknown enum value
// or a duplicate primary key.
type MalformedRowError struct {
	Table  string
	Row    int // 1-based data row, header excluded
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	msg := fmt.Sprintf("%s row %d", e.Table, e.Row)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformed }

// MissingTableError reports an archive without one of the required tables.
type MissingTableError struct {
	Table string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("archive is missing table %s", e.Table)
}

func (e *MissingTableError) Is(target error) bool { return target == ErrMissingTable }
