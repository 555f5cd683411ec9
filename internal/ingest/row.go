package ingest

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the literal timestamp format of the export. Values carry
// no zone and are read as UTC; a fractional seconds suffix is accepted.
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one tokenized CSV record keyed by header name.
type Row map[string]string

// rowReader converts the fields of a single row and remembers the first
// conversion failure, so a decoder can read every field and check once.
type rowReader struct {
	table string
	n     int
	row   Row
	err   error
}

func newRowReader(table string, n int, row Row) *rowReader {
	return &rowReader{table: table, n: n, row: row}
}

func (r *rowReader) fail(field, value, reason string, err error) {
	if r.err != nil {
		return
	}
	r.err = &MalformedRowError{
		Table:  r.table,
		Row:    r.n,
		Field:  field,
		Value:  value,
		Reason: reason,
		Err:    err,
	}
}

func (r *rowReader) str(field string) string {
	v, ok := r.row[field]
	if !ok {
		r.fail(field, "", "field is absent", nil)
		return ""
	}
	return v
}

func (r *rowReader) integer(field string) int {
	v := r.str(field)
	if r.err != nil {
		return 0
	}
	if strings.TrimSpace(v) == "" {
		r.fail(field, v, "required integer is blank", nil)
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.fail(field, v, "not an integer", err)
		return 0
	}
	return n
}

func (r *rowReader) bigInteger(field string) int64 {
	v := r.str(field)
	if r.err != nil {
		return 0
	}
	if strings.TrimSpace(v) == "" {
		r.fail(field, v, "required integer is blank", nil)
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		r.fail(field, v, "not an integer", err)
		return 0
	}
	return n
}

func (r *rowReader) optInteger(field string) *int {
	v := r.str(field)
	if r.err != nil || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.fail(field, v, "not an integer", err)
		return nil
	}
	return &n
}

func (r *rowReader) timestamp(field string) time.Time {
	v := r.str(field)
	if r.err != nil {
		return time.Time{}
	}
	if strings.TrimSpace(v) == "" {
		r.fail(field, v, "required timestamp is blank", nil)
		return time.Time{}
	}
	t, err := ParseTimestamp(v)
	if err != nil {
		r.fail(field, v, "not a timestamp", err)
		return time.Time{}
	}
	return t
}

func (r *rowReader) optTimestamp(field string) *time.Time {
	v := r.str(field)
	if r.err != nil || strings.TrimSpace(v) == "" {
		return nil
	}
	t, err := ParseTimestamp(v)
	if err != nil {
		r.fail(field, v, "not a timestamp", err)
		return nil
	}
	return &t
}

// ParseTimestamp parses an export timestamp such as "2024-01-05 10:00:00"
// as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.UTC)
}
