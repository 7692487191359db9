package config

import "fmt"

// ScenarioConfig holds the planning parameters the control surface drives.
type ScenarioConfig struct {
	// HoursPerDay is the working-day length used to convert hours to days.
	HoursPerDay float64 `json:"hours_per_day"`
	// StartDate anchors the timeline for presentation, YYYY-MM-DD.
	StartDate string `json:"start_date"`
	// AutoChain synthesizes sequential dependencies inside each
	// section/subsection group by day order during ingestion.
	AutoChain bool `json:"auto_chain"`
	// PoolByCategory switches leveling from exclusive crew codes to pooled
	// category capacities.
	PoolByCategory bool `json:"pool_by_category"`
	// Capacities is the per-category crew count used when pooling.
	Capacities map[string]int `json:"capacities"`
	// TargetDays is the desired project duration.
	TargetDays float64 `json:"target_days"`
	// EnforceTarget reports a warning when the leveled schedule exceeds
	// TargetDays.
	EnforceTarget bool `json:"enforce_target"`
	// MaxSuggestSteps bounds the capacity search.
	MaxSuggestSteps int `json:"max_suggest_steps"`
	// ShowMilestones asks renderers to give zero-duration entries a
	// visible minimum width. Consumers apply it; the core never does.
	ShowMilestones bool `json:"show_milestones"`
}

// SetDefaults applies sane defaults.
func (c *ScenarioConfig) SetDefaults() {
	if c.HoursPerDay == 0 {
		c.HoursPerDay = 8
	}
	if c.TargetDays == 0 {
		c.TargetDays = 30
	}
	if c.MaxSuggestSteps == 0 {
		c.MaxSuggestSteps = 30
	}
}

// Validate checks mandatory fields.
func (c ScenarioConfig) Validate() error {
	if c.HoursPerDay <= 0 {
		return fmt.Errorf("hours_per_day must be positive")
	}
	if c.TargetDays <= 0 {
		return fmt.Errorf("target_days must be positive")
	}
	for cat, cap := range c.Capacities {
		if cap < 1 {
			return fmt.Errorf("capacity for category %s must be at least 1", cat)
		}
	}
	return nil
}
