package config

import "fmt"

// IngestConfig locates the plan CSV and the drawing-notes inputs.
type IngestConfig struct {
	// CSVPath is the wide-format plan export.
	CSVPath string `json:"csv_path"`
	// NotesDir holds the drawing text exports scanned for notes.
	NotesDir string `json:"notes_dir"`
	// NotesCachePath is the JSON cache of extracted notes keyed by file
	// signature.
	NotesCachePath string `json:"notes_cache_path"`
}

// SetDefaults applies the data-directory defaults.
func (c *IngestConfig) SetDefaults() {
	if c.NotesDir == "" {
		c.NotesDir = "data"
	}
	if c.NotesCachePath == "" {
		c.NotesCachePath = "data/drawing_notes_cache.json"
	}
}

// Validate checks mandatory fields.
func (c IngestConfig) Validate() error {
	if c.CSVPath == "" {
		return fmt.Errorf("csv_path is required")
	}
	return nil
}
