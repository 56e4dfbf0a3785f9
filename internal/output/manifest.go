/*
PURPOSE:
  Picks the manifest format for a publish run from the file extension.

ARCHITECTURE INTEGRATION:
  - Called by: internal/publish (Publisher.Run)
  - Returns: JSONWriter or CSVWriter behind RecordWriter

ERROR HANDLING:
  - Returns the creation error; never a non-nil writer alongside it.

USAGE:
  w, err := output.NewManifest("publish.csv")
*/

package output

import (
	"path/filepath"
	"strings"

	"github.com/daryltucker/cc-publish/internal/model"
)

// RecordWriter receives one record per published file.
type RecordWriter interface {
	Write(model.Record) error
	Close() error
}

// NewManifest opens a manifest writer for path. A .csv extension selects
// CSV; anything else is JSON Lines.
func NewManifest(path string) (RecordWriter, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		w, err := NewCSVWriter(path)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	w, err := NewJSONWriter(path)
	if err != nil {
		return nil, err
	}
	return w, nil
}
