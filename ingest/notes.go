package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const notePrefix = "note -"

// fileSig identifies a source file's content cheaply: a changed size or
// modification time invalidates the cached notes.
type fileSig struct {
	Size  int64 `json:"size"`
	MTime int64 `json:"mtime"`
}

type noteRecord struct {
	Sig   fileSig  `json:"sig"`
	Notes []string `json:"notes"`
}

type notesCache map[string]noteRecord

// ExtractNotes scans drawing text for "NOTE - " lines and returns the note
// contents, deduplicated in first-seen order.
func ExtractNotes(r io.Reader) ([]string, error) {
	var notes []string
	seen := map[string]bool{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) < len(notePrefix) || !strings.EqualFold(line[:len(notePrefix)], notePrefix) {
			continue
		}
		content := strings.TrimSpace(line[len(notePrefix):])
		if content != "" && !seen[content] {
			notes = append(notes, content)
			seen[content] = true
		}
	}
	return notes, sc.Err()
}

func quickSig(path string) (fileSig, error) {
	st, err := os.Stat(path)
	if err != nil {
		return fileSig{}, err
	}
	return fileSig{Size: st.Size(), MTime: st.ModTime().Unix()}, nil
}

func readCache(cachePath string) notesCache {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return notesCache{}
	}
	var cache notesCache
	if err := json.Unmarshal(data, &cache); err != nil {
		// A corrupt cache is rebuilt, not reported.
		return notesCache{}
	}
	return cache
}

// LoadNotesFromCache returns all cached notes without touching the source
// files. A missing or unreadable cache yields an empty list.
func LoadNotesFromCache(cachePath string) []string {
	cache := readCache(cachePath)
	keys := make([]string, 0, len(cache))
	for k := range cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		out = append(out, cache[k].Notes...)
	}
	return out
}

// RebuildNotesCache re-extracts notes for any source file whose signature
// changed, persists the cache and returns the full note list.
func RebuildNotesCache(paths []string, cachePath string) ([]string, error) {
	cache := readCache(cachePath)
	changed := false
	for _, p := range paths {
		key := filepath.Base(p)
		sig, err := quickSig(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if rec, ok := cache[key]; ok && rec.Sig == sig {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		notes, err := ExtractNotes(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", p, err)
		}
		cache[key] = noteRecord{Sig: sig, Notes: notes}
		changed = true
	}
	if changed {
		if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(cache, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cachePath, data, 0o644); err != nil {
			return nil, err
		}
	}
	return LoadNotesFromCache(cachePath), nil
}
