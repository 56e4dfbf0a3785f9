/*
PURPOSE:
  Defines the core data structures used throughout cc-publish.
  These models describe what a publish run produced.

REQUIREMENTS:
  User-specified:
  - Record every published file with its source and mirrored destination.
  - Track how many import directives were inlined.

  Implementation-discovered:
  - Need JSON tags for the JSON Lines manifest.
  - CSV mapping lives in internal/output/csv.go.

ARCHITECTURE INTEGRATION:
  - Used by: internal/publish, internal/output, internal/cli
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.

USAGE:
  rec := model.Record{...}

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update both manifest writers when adding fields.
*/

package model

import (
	"time"
)

// Record describes a single published HTML file.
type Record struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	RelPath      string `json:"rel_path"`
	Replacements int    `json:"replacements"` // import directives inlined
	Bytes        int    `json:"bytes"`
}

// Summary is the outcome of one full publish pass.
type Summary struct {
	SourceDir    string        `json:"source_dir"`
	TargetDir    string        `json:"target_dir"`
	Started      time.Time     `json:"started"`
	Duration     time.Duration `json:"duration"`
	Files        int           `json:"files"`
	Replacements int           `json:"replacements"`
	Records      []Record      `json:"records,omitempty"`
}

// Add appends rec to the summary and updates the totals.
func (s *Summary) Add(rec Record) {
	s.Records = append(s.Records, rec)
	s.Files++
	s.Replacements += rec.Replacements
}
