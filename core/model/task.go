package model

// UnspecifiedCrew is the sentinel bucket used when a task carries no crew
// category (or no crew code, depending on the grouping).
const UnspecifiedCrew = "UNSPEC"

// Task is an immutable input record describing one unit of work from the
// project plan.
type Task struct {
	ID         string // unique within a working set
	Section    string // top-level area, empty when unknown
	Subsection string
	Discipline string // trade tag such as Electrical or Demolition
	Name       string
	PlannedDay int // ordinal of the day column the task came from

	// DurationHours is nil for zero-effort milestones. Absent durations are
	// never imputed.
	DurationHours *float64

	CrewCode     string // exact resource identifier, implicitly capacity 1
	CrewCategory string // resource pool identifier, capacity configurable
	Dependencies []string
}

// Duration returns the working duration in hours, treating an absent
// duration as zero.
func (t Task) Duration() float64 {
	if t.DurationHours == nil {
		return 0
	}
	return *t.DurationHours
}

// IsMilestone reports whether the task has no recorded duration.
func (t Task) IsMilestone() bool { return t.DurationHours == nil }

// ResourceKey returns the identifier used for exclusive-crew scheduling:
// the exact crew code when present, otherwise the crew category. Empty
// means the task is unconstrained by resources.
func (t Task) ResourceKey() string {
	if t.CrewCode != "" {
		return t.CrewCode
	}
	return t.CrewCategory
}

// Unconstrained reports whether leveling can never delay the task.
func (t Task) Unconstrained() bool {
	return t.CrewCode == "" && t.CrewCategory == ""
}

// Hours is a convenience constructor for optional durations.
func Hours(h float64) *float64 { return &h }
