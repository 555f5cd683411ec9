package output

import (
	"fmt"
	"io"
	"os"
)

// Writer sends command results to stdout and diagnostics to stderr. In JSON
// mode stdout carries exactly one envelope per command and nothing else.
type Writer struct {
	JSONMode  bool
	QuietMode bool
	Stdout    io.Writer
	Stderr    io.Writer
}

// New creates a Writer bound to the process streams.
func New(jsonMode, quietMode bool) *Writer {
	return &Writer{
		JSONMode:  jsonMode,
		QuietMode: quietMode,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Success writes data as a success envelope in JSON mode, otherwise message.
func (w *Writer) Success(data any, message string) {
	if w.JSONMode {
		writeJSONSuccess(w.Stdout, data, message)
		return
	}
	writeHumanSuccess(w.Stdout, message)
}

// Report is Success for results whose human form is expensive to build.
// render runs only outside JSON mode; if it fails nothing is written and the
// error is returned.
func (w *Writer) Report(data any, render func() (string, error)) error {
	if w.JSONMode {
		writeJSONSuccess(w.Stdout, data, "")
		return nil
	}
	text, err := render()
	if err != nil {
		return err
	}
	writeHumanSuccess(w.Stdout, text)
	return nil
}

// Document writes preformatted text (JSON trees, markdown) to stdout
// untouched.
func (w *Writer) Document(text string) {
	fmt.Fprintln(w.Stdout, text)
}

// Error writes err and returns the process exit code for code. JSON errors
// go to stdout so scripts read a single stream.
func (w *Writer) Error(err error, code ErrorCode) int {
	if w.JSONMode {
		writeJSONError(w.Stdout, err, code)
	} else {
		writeHumanError(w.Stderr, err)
	}
	return ExitCodeForError(code)
}

// Info writes a progress note to stderr. Silent in quiet and JSON mode.
func (w *Writer) Info(format string, args ...any) {
	if w.QuietMode || w.JSONMode {
		return
	}
	writeNotice(w.Stderr, noticeInfo, fmt.Sprintf(format, args...))
}

// Warn writes a warning to stderr. Quiet mode keeps warnings; JSON mode drops
// them.
func (w *Writer) Warn(format string, args ...any) {
	if w.JSONMode {
		return
	}
	writeNotice(w.Stderr, noticeWarn, fmt.Sprintf(format, args...))
}
