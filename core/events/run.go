package events

import "time"

// RunEvent is published after each baseline + leveling pipeline run.
type RunEvent struct {
	RunID        string
	Tasks        int
	Pooled       bool
	HasCycle     bool
	DurationDays float64
	LevelingTime time.Duration
	Time         time.Time
}

// SuggestEvent is published after each capacity search.
type SuggestEvent struct {
	RunID        string
	TargetDays   float64
	DurationDays float64
	Steps        int
	Time         time.Time
}
