package model

// CpmInfo holds the critical-path numbers for one task in the unconstrained
// baseline. Values are immutable once computed.
type CpmInfo struct {
	Duration       float64 `json:"duration_hours"`
	EarliestStart  float64 `json:"earliest_start"`
	EarliestFinish float64 `json:"earliest_finish"`
	LatestStart    float64 `json:"latest_start"`
	LatestFinish   float64 `json:"latest_finish"`
	Slack          float64 `json:"slack"`
	Critical       bool    `json:"critical"`
}

// ScheduleEntry is one task's placement in a leveled schedule.
type ScheduleEntry struct {
	Name       string `json:"name"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`

	Start    float64 `json:"start"`
	Finish   float64 `json:"finish"`
	Duration float64 `json:"duration_hours"`

	CrewCode     string `json:"crew_code,omitempty"`
	CrewCategory string `json:"crew_category,omitempty"`

	// Delays are measured against the unconstrained baseline and are never
	// negative: leveling only ever pushes tasks later.
	DelayVsBaselineStart  float64 `json:"delay_vs_baseline_start"`
	DelayVsBaselineFinish float64 `json:"delay_vs_baseline_finish"`
}

// Schedule maps task ID to its leveled placement. A Schedule is scoped to a
// single leveling run and is never shared across runs.
type Schedule map[string]ScheduleEntry

// CapacityMap maps crew category to the number of crews available
// concurrently. Only meaningful when pooling by category.
type CapacityMap map[string]int

// Clone returns an independent copy, so that capacity trials never alias
// the map they started from.
func (c CapacityMap) Clone() CapacityMap {
	out := make(CapacityMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// For returns the capacity for a category, defaulting to 1 for unknown or
// non-positive entries.
func (c CapacityMap) For(category string) int {
	if cap, ok := c[category]; ok && cap > 1 {
		return cap
	}
	return 1
}
