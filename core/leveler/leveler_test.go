package leveler

import (
	"reflect"
	"testing"

	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

func forkTasks() []model.Task {
	return []model.Task{
		{ID: "A", Name: "A", PlannedDay: 1, DurationHours: model.Hours(8), CrewCategory: "1"},
		{ID: "B", Name: "B", PlannedDay: 1, DurationHours: model.Hours(4), CrewCategory: "1", Dependencies: []string{"A"}},
		{ID: "C", Name: "C", PlannedDay: 1, DurationHours: model.Hours(2), CrewCategory: "1", Dependencies: []string{"A"}},
	}
}

func TestLevelPooledSerializesContention(t *testing.T) {
	tasks := forkTasks()
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, true, model.CapacityMap{"1": 1})

	a, b, c := sched["A"], sched["B"], sched["C"]
	if a.Start != 0 || a.Finish != 8 {
		t.Fatalf("A = (%v,%v), want (0,8)", a.Start, a.Finish)
	}
	if b.Start != 8 || b.Finish != 12 {
		t.Fatalf("B = (%v,%v), want (8,12)", b.Start, b.Finish)
	}
	if c.Start != 12 || c.Finish != 14 {
		t.Fatalf("C = (%v,%v), want (12,14)", c.Start, c.Finish)
	}
	if c.DelayVsBaselineStart != 4 {
		t.Fatalf("C start delay = %v, want 4", c.DelayVsBaselineStart)
	}
	if b.DelayVsBaselineStart != 0 || b.DelayVsBaselineFinish != 0 {
		t.Fatalf("B should be undelayed, got %+v", b)
	}
}

func TestLevelPooledCapacityTwo(t *testing.T) {
	tasks := forkTasks()
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, true, model.CapacityMap{"1": 2})

	// With two crews B and C run in parallel after A.
	if b := sched["B"]; b.Start != 8 || b.Finish != 12 {
		t.Fatalf("B = (%v,%v)", b.Start, b.Finish)
	}
	if c := sched["C"]; c.Start != 8 || c.Finish != 10 {
		t.Fatalf("C = (%v,%v)", c.Start, c.Finish)
	}
}

func TestLevelExclusiveCrewWatermark(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Name: "A", PlannedDay: 1, DurationHours: model.Hours(3), CrewCode: "2.1"},
		{ID: "B", Name: "B", PlannedDay: 1, DurationHours: model.Hours(3), CrewCode: "2.1"},
		{ID: "C", Name: "C", PlannedDay: 1, DurationHours: model.Hours(3), CrewCode: "2.2"},
	}
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, false, nil)

	if a := sched["A"]; a.Start != 0 || a.Finish != 3 {
		t.Fatalf("A = (%v,%v)", a.Start, a.Finish)
	}
	if b := sched["B"]; b.Start != 3 || b.Finish != 6 {
		t.Fatalf("same crew must serialize, B = (%v,%v)", b.Start, b.Finish)
	}
	if c := sched["C"]; c.Start != 0 || c.Finish != 3 {
		t.Fatalf("other crew runs in parallel, C = (%v,%v)", c.Start, c.Finish)
	}
}

func TestLevelExclusiveFallsBackToCategory(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Name: "A", PlannedDay: 1, DurationHours: model.Hours(2), CrewCategory: "3"},
		{ID: "B", Name: "B", PlannedDay: 1, DurationHours: model.Hours(2), CrewCategory: "3"},
	}
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, false, nil)
	if b := sched["B"]; b.Start != 2 {
		t.Fatalf("category fallback should serialize, B start = %v", b.Start)
	}
}

func TestLevelUnconstrainedNeverDelayed(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Name: "A", PlannedDay: 1, DurationHours: model.Hours(8), CrewCategory: "1"},
		{ID: "B", Name: "B", PlannedDay: 1, DurationHours: model.Hours(8), CrewCategory: "1"},
		{ID: "F", Name: "F", PlannedDay: 1, DurationHours: model.Hours(4)},
	}
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, true, model.CapacityMap{"1": 1})
	if f := sched["F"]; f.Start != base.Info["F"].EarliestStart || f.DelayVsBaselineStart != 0 {
		t.Fatalf("unconstrained task was delayed: %+v", f)
	}
}

func TestLevelDelaysNeverNegative(t *testing.T) {
	tasks := forkTasks()
	base := cpm.Compute(tasks)
	for _, pooled := range []bool{false, true} {
		sched := Level(tasks, base, pooled, model.CapacityMap{"1": 1})
		for id, e := range sched {
			if e.DelayVsBaselineStart < 0 || e.DelayVsBaselineFinish < 0 {
				t.Fatalf("pooled=%v %s: negative delay %+v", pooled, id, e)
			}
			if e.Start < base.Info[id].EarliestStart {
				t.Fatalf("pooled=%v %s started before baseline ES", pooled, id)
			}
		}
	}
}

func TestLevelPooledCapacityInvariant(t *testing.T) {
	tasks := []model.Task{
		{ID: "T1", Name: "T1", PlannedDay: 1, DurationHours: model.Hours(4), CrewCategory: "5"},
		{ID: "T2", Name: "T2", PlannedDay: 1, DurationHours: model.Hours(4), CrewCategory: "5"},
		{ID: "T3", Name: "T3", PlannedDay: 1, DurationHours: model.Hours(4), CrewCategory: "5"},
		{ID: "T4", Name: "T4", PlannedDay: 2, DurationHours: model.Hours(4), CrewCategory: "5"},
	}
	base := cpm.Compute(tasks)
	const capacity = 2
	sched := Level(tasks, base, true, model.CapacityMap{"5": capacity})

	// Probe occupancy just after each start; touching endpoints are not
	// overlap.
	for id, e := range sched {
		at := e.Start
		active := 0
		for _, other := range sched {
			if other.Start <= at && at < other.Finish {
				active++
			}
		}
		if active > capacity {
			t.Fatalf("%s: %d concurrent tasks at %v, capacity %d", id, active, at, capacity)
		}
	}
}

func TestLevelMilestoneStartsAtFloor(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Name: "A", PlannedDay: 1, DurationHours: model.Hours(6), CrewCategory: "1"},
		{ID: "M", Name: "M", PlannedDay: 1, CrewCategory: "1", Dependencies: []string{"A"}},
	}
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, true, model.CapacityMap{"1": 1})
	if m := sched["M"]; m.Start != 6 || m.Finish != 6 || m.Duration != 0 {
		t.Fatalf("milestone M = %+v", m)
	}
}

func TestLevelDeterministic(t *testing.T) {
	tasks := forkTasks()
	base := cpm.Compute(tasks)
	first := Level(tasks, base, true, model.CapacityMap{"1": 1})
	second := Level(tasks, base, true, model.CapacityMap{"1": 1})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different schedules")
	}
}

func TestLevelEmptySet(t *testing.T) {
	base := cpm.Compute(nil)
	if sched := Level(nil, base, true, nil); len(sched) != 0 {
		t.Fatalf("empty input should level to empty schedule, got %d entries", len(sched))
	}
}

func TestLevelUnknownCategoryDefaultsToOne(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Name: "A", PlannedDay: 1, DurationHours: model.Hours(2), CrewCategory: "9"},
		{ID: "B", Name: "B", PlannedDay: 1, DurationHours: model.Hours(2), CrewCategory: "9"},
	}
	base := cpm.Compute(tasks)
	sched := Level(tasks, base, true, model.CapacityMap{})
	if b := sched["B"]; b.Start != 2 {
		t.Fatalf("missing category must default to capacity 1, B start = %v", b.Start)
	}
}
