package output

import (
	"errors"
	"io/fs"

	"github.com/ALT-F4-LLC/hours/internal/ingest"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

// CodeForError classifies a domain error. Errors it does not recognize are
// ErrGeneral.
func CodeForError(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, snapshot.ErrNoSnapshot):
		return ErrNoData
	case errors.Is(err, ingest.ErrMalformed), errors.Is(err, ingest.ErrMissingTable), errors.Is(err, ingest.ErrNotArchive):
		return ErrMalformed
	case errors.Is(err, snapshot.ErrUnresolved):
		return ErrUnresolved
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	default:
		return ErrGeneral
	}
}
