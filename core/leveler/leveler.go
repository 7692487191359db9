package leveler

import (
	"sort"

	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

// interval is an accepted pooled booking.
type interval struct {
	category string
	start    float64
	finish   float64
}

// Level simulates resource assignment over the baseline and returns the
// leveled schedule. When poolByCategory is false the capacity map is
// ignored and every resource key is exclusive with capacity 1.
//
// Tasks are processed by (baseline ES, planned day, name) ascending; the
// tie-break order is load-bearing for determinism.
func Level(tasks []model.Task, base cpm.Baseline, poolByCategory bool, caps model.CapacityMap) model.Schedule {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		ea := base.Info[a.ID].EarliestStart
		eb := base.Info[b.ID].EarliestStart
		if ea != eb {
			return ea < eb
		}
		if a.PlannedDay != b.PlannedDay {
			return a.PlannedDay < b.PlannedDay
		}
		return a.Name < b.Name
	})

	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}

	schedule := make(model.Schedule, len(tasks))
	var accepted []interval          // pooled mode bookings
	busyUntil := map[string]float64{} // exclusive mode watermark per resource key

	for _, t := range ordered {
		dur := t.Duration()
		est := earliestStart(t, base, schedule, present)

		start := est
		if !t.Unconstrained() {
			if poolByCategory {
				cat := t.CrewCategory
				if cat == "" {
					cat = model.UnspecifiedCrew
				}
				start = admit(accepted, cat, caps.For(cat), est, dur)
			} else {
				key := t.ResourceKey()
				if ready := busyUntil[key]; ready > start {
					start = ready
				}
			}
		}
		finish := start + dur

		info := base.Info[t.ID]
		schedule[t.ID] = model.ScheduleEntry{
			Name:                  t.Name,
			Section:               t.Section,
			Subsection:            t.Subsection,
			Start:                 start,
			Finish:                finish,
			Duration:              dur,
			CrewCode:              t.CrewCode,
			CrewCategory:          t.CrewCategory,
			DelayVsBaselineStart:  nonNegative(start - info.EarliestStart),
			DelayVsBaselineFinish: nonNegative(finish - info.EarliestFinish),
		}

		if !t.Unconstrained() {
			if poolByCategory {
				cat := t.CrewCategory
				if cat == "" {
					cat = model.UnspecifiedCrew
				}
				accepted = append(accepted, interval{category: cat, start: start, finish: finish})
			} else {
				busyUntil[t.ResourceKey()] = finish
			}
		}
	}
	return schedule
}

// earliestStart computes the dependency-feasible floor: the max finish of
// in-set dependencies already placed in this pass, falling back to a
// dependency's baseline EF when it has not been placed yet, and never
// earlier than the task's own baseline ES.
func earliestStart(t model.Task, base cpm.Baseline, schedule model.Schedule, present map[string]bool) float64 {
	est := base.Info[t.ID].EarliestStart
	for _, d := range t.Dependencies {
		if !present[d] {
			continue
		}
		f := base.Info[d].EarliestFinish
		if e, ok := schedule[d]; ok {
			f = e.Finish
		}
		if f > est {
			est = f
		}
	}
	return est
}

// admit finds the earliest start at or after est where fewer than cap
// bookings of the category are active. A booking occupies the half-open
// interval [start, finish): one that finishes exactly at the candidate
// does not block it, one that starts exactly at the candidate does. The
// candidate jumps greedily to the earliest finish among the blocking
// bookings rather than re-scanning event by event.
func admit(accepted []interval, category string, cap int, est, dur float64) float64 {
	start := est
	for dur > 0 && activeAt(accepted, category, start) >= cap {
		jumped := false
		next := 0.0
		for _, iv := range accepted {
			if iv.category != category || !(iv.start <= start && start < iv.finish) {
				continue
			}
			if !jumped || iv.finish < next {
				next = iv.finish
				jumped = true
			}
		}
		if !jumped {
			break
		}
		start = next
	}
	return start
}

func activeAt(accepted []interval, category string, at float64) int {
	n := 0
	for _, iv := range accepted {
		if iv.category == category && iv.start <= at && at < iv.finish {
			n++
		}
	}
	return n
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
