/*
PURPOSE:
  Writes publish records to a CSV file.
  Flushes after every row so an aborted run leaves a readable file.

ARCHITECTURE INTEGRATION:
  - Called by: internal/publish
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on file creation or write failure.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update header and Write() mapping when Record changes.
*/

package output

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/cc-publish/internal/model"
)

var csvHeader = []string{"source", "destination", "rel_path", "replacements", "bytes"}

// CSVWriter handles writing records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single record to the CSV file.
func (cw *CSVWriter) Write(r model.Record) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.Source,
		r.Destination,
		r.RelPath,
		strconv.Itoa(r.Replacements),
		strconv.Itoa(r.Bytes),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes pending rows and closes the underlying file.
// It reports a failed flush as well as a failed close.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	return errors.Join(cw.writer.Error(), cw.file.Close())
}
