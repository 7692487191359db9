package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

// ProjectMetrics summarises one leveled schedule.
type ProjectMetrics struct {
	DurationDays float64 `json:"duration_days"`
}

// ComputeMetrics derives the project duration in working days. An empty
// schedule yields zero. Hours per day below 1 are clamped to 1.
func ComputeMetrics(schedule model.Schedule, hoursPerDay float64) ProjectMetrics {
	if len(schedule) == 0 {
		return ProjectMetrics{}
	}
	finish := 0.0
	for _, e := range schedule {
		if e.Finish > finish {
			finish = e.Finish
		}
	}
	if hoursPerDay < 1 {
		hoursPerDay = 1
	}
	return ProjectMetrics{DurationDays: finish / hoursPerDay}
}

// Bottlenecks aggregates contention indicators over a leveled schedule.
type Bottlenecks struct {
	// DelayByCategory sums start delay versus the baseline per crew
	// category; high values indicate contention on that pool.
	DelayByCategory map[string]float64 `json:"delay_by_category"`
	// IdleByCrewCode sums the gaps between consecutive intervals of each
	// exact crew; high values indicate an under-used crew.
	IdleByCrewCode map[string]float64 `json:"idle_by_crew_code"`
}

// AnalyzeBottlenecks is a pure read-only aggregation over an already
// computed schedule; it never re-levels. tasks and base are part of the
// contract for callers that derive both from the same working set.
func AnalyzeBottlenecks(tasks []model.Task, base cpm.Baseline, schedule model.Schedule) Bottlenecks {
	_ = tasks
	_ = base

	delayByCategory := make(map[string]float64)
	perCode := make(map[string][][2]float64)
	for _, e := range schedule {
		cat := e.CrewCategory
		if cat == "" {
			cat = model.UnspecifiedCrew
		}
		delayByCategory[cat] += e.DelayVsBaselineStart

		code := e.CrewCode
		if code == "" {
			code = model.UnspecifiedCrew
		}
		perCode[code] = append(perCode[code], [2]float64{e.Start, e.Finish})
	}

	idleByCode := make(map[string]float64, len(perCode))
	for code, intervals := range perCode {
		sort.Slice(intervals, func(i, j int) bool {
			if intervals[i][0] != intervals[j][0] {
				return intervals[i][0] < intervals[j][0]
			}
			return intervals[i][1] < intervals[j][1]
		})
		idle := 0.0
		for i := 1; i < len(intervals); i++ {
			if gap := intervals[i][0] - intervals[i-1][1]; gap > 0 {
				idle += gap
			}
		}
		idleByCode[code] = idle
	}

	return Bottlenecks{DelayByCategory: delayByCategory, IdleByCrewCode: idleByCode}
}

// DelaySummary describes the distribution of start delays across a leveled
// schedule.
type DelaySummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// SummarizeDelays computes distribution statistics over per-task start
// delays. An empty schedule yields the zero summary.
func SummarizeDelays(schedule model.Schedule) DelaySummary {
	if len(schedule) == 0 {
		return DelaySummary{}
	}
	delays := make([]float64, 0, len(schedule))
	for _, e := range schedule {
		delays = append(delays, e.DelayVsBaselineStart)
	}
	sort.Float64s(delays)

	s := DelaySummary{
		Mean: stat.Mean(delays, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, delays, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, delays, nil),
		Max:  delays[len(delays)-1],
	}
	if len(delays) > 1 {
		s.StdDev = stat.StdDev(delays, nil)
	}
	return s
}
