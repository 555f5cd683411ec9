package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

const utf8BOM = "\ufeff"

// ReadArchive opens the export zip at path and decodes every table.
func ReadArchive(path string) (*Export, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, notArchive(err))
	}
	defer zr.Close()

	return readZip(&zr.Reader)
}

// ReadArchiveFrom decodes an export zip held by r, for example an uploaded
// file or an in-memory buffer.
func ReadArchiveFrom(r io.ReaderAt, size int64) (*Export, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", notArchive(err))
	}
	return readZip(zr)
}

func notArchive(err error) error {
	if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) || errors.Is(err, zip.ErrChecksum) {
		return fmt.Errorf("%w: %w", ErrNotArchive, err)
	}
	return err
}

// ReadArchiveBytes is ReadArchiveFrom over a byte slice.
func ReadArchiveBytes(data []byte) (*Export, error) {
	return ReadArchiveFrom(bytes.NewReader(data), int64(len(data)))
}

// readZip tokenizes every table concurrently. Errors are reported in Tables
// order so the same archive always fails the same way.
func readZip(zr *zip.Reader) (*Export, error) {
	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	files := make([]*zip.File, len(Tables))
	for i, name := range Tables {
		f, ok := entries[name]
		if !ok {
			return nil, &MissingTableError{Table: name}
		}
		files[i] = f
	}

	rows := make([][]Row, len(Tables))
	errs := make([]error, len(Tables))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			rows[i], errs[i] = readTable(f)
			return nil
		})
	}
	_ = g.Wait()

	tables := make(map[string][]Row, len(Tables))
	for i, name := range Tables {
		if errs[i] != nil {
			return nil, errs[i]
		}
		tables[name] = rows[i]
	}
	return Decode(tables)
}

func readTable(f *zip.File) ([]Row, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	return ReadTable(f.Name, rc)
}

// ReadTable tokenizes one CSV table. The first record is the header; every
// following record becomes a Row keyed by header name. A record shorter than
// the header leaves the trailing fields absent, which the decoder rejects.
func ReadTable(table string, r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MalformedRowError{Table: table, Reason: "missing header row"}
	}
	if err != nil {
		return nil, tokenizeError(table, 0, err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, tokenizeError(table, n, err)
		}
		row := make(Row, len(header))
		for i, v := range rec {
			if i < len(header) {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func tokenizeError(table string, n int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) && pe.Line > 0 {
		// Line counts the header, the data row number does not.
		n = pe.Line - 1
	}
	return &MalformedRowError{Table: table, Row: n, Reason: "cannot tokenize record", Err: err}
}
