package cpm

import (
	"sort"

	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

// Epsilon is the slack threshold under which a task counts as critical. It
// absorbs IEEE-754 rounding across the two passes.
const Epsilon = 1e-9

// Baseline is the result of one critical-path computation.
type Baseline struct {
	Info          map[string]model.CpmInfo
	ProjectFinish float64

	// HasCycle is set when part of the graph never reached zero in-degree.
	// Those tasks are still present in Info, appended to the order in
	// sorted-ID order, but their numbers are not meaningful.
	HasCycle bool
}

// inSetDeps returns each task's dependency set restricted to IDs present in
// the working set. References to unknown IDs are dropped, not errored.
func inSetDeps(tasks []model.Task) map[string][]string {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}
	deps := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		var ds []string
		for _, d := range t.Dependencies {
			if present[d] {
				ds = append(ds, d)
			}
		}
		deps[t.ID] = ds
	}
	return deps
}

// topoOrder runs Kahn's algorithm over the in-set dependency graph. Nodes
// stuck on a cycle are appended after the proper order instead of raising
// an error; the second return reports whether that happened.
func topoOrder(tasks []model.Task, deps map[string][]string) ([]string, bool) {
	indeg := make(map[string]int, len(tasks))
	succs := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		indeg[t.ID] = len(deps[t.ID])
		for _, d := range deps[t.ID] {
			succs[d] = append(succs[d], t.ID)
		}
	}

	var queue []string
	for _, t := range tasks {
		if indeg[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	order := make([]string, 0, len(tasks))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, v := range succs[u] {
			indeg[v]--
			if indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(order) == len(tasks) {
		return order, false
	}
	var residual []string
	for id, d := range indeg {
		if d > 0 {
			residual = append(residual, id)
		}
	}
	sort.Strings(residual)
	return append(order, residual...), true
}

// Compute produces the CPM baseline for the working set. An empty set
// yields an empty mapping and a zero project finish. The computation is
// deterministic: identical inputs produce identical outputs.
func Compute(tasks []model.Task) Baseline {
	deps := inSetDeps(tasks)
	order, hasCycle := topoOrder(tasks, deps)

	info := make(map[string]model.CpmInfo, len(tasks))
	durations := make(map[string]float64, len(tasks))
	for _, t := range tasks {
		durations[t.ID] = t.Duration()
	}

	// Forward pass: ES is the max EF over predecessors, zero at the roots.
	for _, id := range order {
		es := 0.0
		for _, d := range deps[id] {
			if p, ok := info[d]; ok && p.EarliestFinish > es {
				es = p.EarliestFinish
			}
		}
		dur := durations[id]
		info[id] = model.CpmInfo{
			Duration:       dur,
			EarliestStart:  es,
			EarliestFinish: es + dur,
		}
	}

	projectFinish := 0.0
	for _, ci := range info {
		if ci.EarliestFinish > projectFinish {
			projectFinish = ci.EarliestFinish
		}
	}

	succs := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		for _, d := range deps[t.ID] {
			succs[d] = append(succs[d], t.ID)
		}
	}

	// Backward pass in reverse order: LF is the min LS over successors,
	// the project finish at the sinks.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		lf := projectFinish
		for _, s := range succs[id] {
			if sc, ok := info[s]; ok && sc.LatestStart < lf {
				lf = sc.LatestStart
			}
		}
		ci := info[id]
		ci.LatestFinish = lf
		ci.LatestStart = lf - ci.Duration
		slack := ci.LatestStart - ci.EarliestStart
		if slack < 0 {
			slack = 0
		}
		ci.Slack = slack
		ci.Critical = slack < Epsilon
		info[id] = ci
	}

	return Baseline{Info: info, ProjectFinish: projectFinish, HasCycle: hasCycle}
}
