package suggest

import (
	"sort"

	"github.com/Kirankkt/Construction-Scheduler-2/core/analysis"
	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/leveler"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

// improvementEpsilon stops the search when the best trial no longer moves
// the duration by a meaningful amount.
const improvementEpsilon = 1e-6

// DefaultMaxSteps bounds the hill-climb when the caller passes no budget.
const DefaultMaxSteps = 30

// Config carries the search parameters.
type Config struct {
	HoursPerDay    float64
	TargetDays     float64
	PoolByCategory bool
	// MaxSteps limits accepted capacity increments; zero means
	// DefaultMaxSteps.
	MaxSteps int
}

// Result is the outcome of one capacity search.
type Result struct {
	Capacities   model.CapacityMap `json:"capacities"`
	DurationDays float64           `json:"duration_days"`
	Steps        int               `json:"steps"`
}

// Suggest greedily raises category capacities one at a time until the
// target duration is met, the step budget runs out, or no single increment
// improves the duration. It is a hill-climb: combinations that only help
// jointly are not explored, and the target is not guaranteed to be reached.
//
// With pooling disabled, leveling is capacity-independent; the input
// capacities are returned unchanged after a single measurement.
func Suggest(tasks []model.Task, base cpm.Baseline, cfg Config, initial model.CapacityMap) Result {
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	caps := make(model.CapacityMap, len(initial))
	for k, v := range initial {
		if v < 1 {
			v = 1
		}
		caps[k] = v
	}

	if !cfg.PoolByCategory {
		sched := leveler.Level(tasks, base, false, nil)
		m := analysis.ComputeMetrics(sched, cfg.HoursPerDay)
		return Result{Capacities: caps, DurationDays: m.DurationDays, Steps: 0}
	}

	for _, t := range tasks {
		if t.CrewCategory == "" {
			continue
		}
		if _, ok := caps[t.CrewCategory]; !ok {
			caps[t.CrewCategory] = 1
		}
	}

	durationWith := func(trial model.CapacityMap) float64 {
		sched := leveler.Level(tasks, base, true, trial)
		return analysis.ComputeMetrics(sched, cfg.HoursPerDay).DurationDays
	}

	curr := durationWith(caps)
	steps := 0
	for curr > cfg.TargetDays && steps < maxSteps {
		// Fixed enumeration order keeps the tie-break deterministic: the
		// first category reaching the maximum improvement wins.
		cats := make([]string, 0, len(caps))
		for c := range caps {
			cats = append(cats, c)
		}
		sort.Strings(cats)

		bestImprovement := 0.0
		bestDur := curr
		var bestCaps model.CapacityMap
		found := false
		for _, c := range cats {
			trial := caps.Clone()
			trial[c]++
			d := durationWith(trial)
			if imp := curr - d; !found || imp > bestImprovement {
				bestImprovement = imp
				bestDur = d
				bestCaps = trial
				found = true
			}
		}
		if !found || bestImprovement <= improvementEpsilon {
			break
		}
		caps = bestCaps
		curr = bestDur
		steps++
	}
	return Result{Capacities: caps, DurationDays: curr, Steps: steps}
}
