package ingest

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

// TaskMatch is one candidate task for a drawing note.
type TaskMatch struct {
	TaskID string `json:"task_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"` // 0..100
}

// NoteMatch pairs a note with its best-matching tasks.
type NoteMatch struct {
	Note    string      `json:"note"`
	Matches []TaskMatch `json:"matches"`
}

// normalizeTokens lowercases and sorts the words so that token order does
// not affect similarity.
func normalizeTokens(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// MatchNotes fuzzily matches each note against task names and returns the
// top limit candidates per note, best first. Ties break by task name so the
// output is stable.
func MatchNotes(notes []string, tasks []model.Task, limit int) []NoteMatch {
	if limit <= 0 {
		limit = 3
	}
	sim := metrics.NewSorensenDice()
	sim.NgramSize = 2

	out := make([]NoteMatch, 0, len(notes))
	for _, note := range notes {
		normNote := normalizeTokens(note)
		cands := make([]TaskMatch, 0, len(tasks))
		for _, t := range tasks {
			score := strutil.Similarity(normNote, normalizeTokens(t.Name), sim)
			cands = append(cands, TaskMatch{TaskID: t.ID, Name: t.Name, Score: int(score * 100)})
		}
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].Score != cands[j].Score {
				return cands[i].Score > cands[j].Score
			}
			return cands[i].Name < cands[j].Name
		})
		if len(cands) > limit {
			cands = cands[:limit]
		}
		out = append(out, NoteMatch{Note: note, Matches: cands})
	}
	return out
}
