package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kirankkt/Construction-Scheduler-2/core/analysis"
	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
	"github.com/Kirankkt/Construction-Scheduler-2/core/suggest"
	"github.com/Kirankkt/Construction-Scheduler-2/infra/logger"
)

type stubPlanner struct {
	schedule model.Schedule
	metrics  analysis.ProjectMetrics
	warnings []string
	base     cpm.Baseline
	lastReq  suggest.Config
	lastCaps map[string]int
}

func (s *stubPlanner) Schedule() (model.Schedule, analysis.ProjectMetrics, []string) {
	return s.schedule, s.metrics, s.warnings
}

func (s *stubPlanner) Baseline() cpm.Baseline { return s.base }

func (s *stubPlanner) Bottlenecks() (analysis.Bottlenecks, analysis.DelaySummary) {
	return analysis.Bottlenecks{
			DelayByCategory: map[string]float64{"1": 4},
			IdleByCrewCode:  map[string]float64{"1A": 2},
		}, analysis.DelaySummary{Mean: 2, P50: 2, Max: 4}
}

func (s *stubPlanner) Suggest(targetDays float64, maxSteps int, initial map[string]int) suggest.Result {
	s.lastReq = suggest.Config{TargetDays: targetDays, MaxSteps: maxSteps}
	s.lastCaps = initial
	return suggest.Result{
		Capacities:   model.CapacityMap{"1": 2},
		DurationDays: targetDays,
		Steps:        1,
	}
}

func newStub() *stubPlanner {
	return &stubPlanner{
		schedule: model.Schedule{
			"T0001": {Name: "Demolish walls", Start: 0, Finish: 8, Duration: 8, CrewCategory: "1"},
			"T0002": {Name: "Clear debris", Start: 8, Finish: 12, Duration: 4, CrewCategory: "1", DelayVsBaselineStart: 4},
		},
		metrics: analysis.ProjectMetrics{DurationDays: 1.5},
		base: cpm.Baseline{
			ProjectFinish: 12,
			Info: map[string]model.CpmInfo{
				"T0001": {Duration: 8, EarliestFinish: 8, LatestFinish: 8, Critical: true},
				"T0002": {Duration: 4, EarliestStart: 8, EarliestFinish: 12, LatestStart: 8, LatestFinish: 12, Critical: true},
			},
		},
	}
}

func TestScheduleHandler(t *testing.T) {
	p := newStub()
	p.warnings = []string{"leveled duration 1.5 days exceeds target 1.0 days"}
	h := NewHandler(p, logger.NopLogger{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.DurationDays != 1.5 {
		t.Fatalf("duration %v", out.DurationDays)
	}
	if len(out.Entries) != 2 || out.Entries["T0002"].DelayVsBaselineStart != 4 {
		t.Fatalf("unexpected entries %#v", out.Entries)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("warnings %v", out.Warnings)
	}
}

func TestScheduleHandlerMethodNotAllowed(t *testing.T) {
	h := NewHandler(newStub(), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestCriticalPathHandler(t *testing.T) {
	h := NewHandler(newStub(), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/critical-path", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out criticalPathResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ProjectFinishHours != 12 {
		t.Fatalf("finish %v", out.ProjectFinishHours)
	}
	// Critical IDs come back in earliest-start order.
	if len(out.CriticalIDs) != 2 || out.CriticalIDs[0] != "T0001" || out.CriticalIDs[1] != "T0002" {
		t.Fatalf("critical ids %v", out.CriticalIDs)
	}
	if len(out.Info) != 2 {
		t.Fatalf("info size %d", len(out.Info))
	}
}

func TestCriticalPathHandlerCriticalOnly(t *testing.T) {
	p := newStub()
	p.base.Info["T0003"] = model.CpmInfo{Duration: 2, EarliestFinish: 2, LatestStart: 10, LatestFinish: 12, Slack: 10}
	h := NewHandler(p, logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/critical-path?critical_only=true", nil))
	var out criticalPathResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Info) != 2 {
		t.Fatalf("expected critical tasks only, got %d", len(out.Info))
	}
	if _, ok := out.Info["T0003"]; ok {
		t.Fatalf("non-critical task leaked into filtered response")
	}
}

func TestBottlenecksHandler(t *testing.T) {
	h := NewHandler(newStub(), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bottlenecks", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out bottlenecksResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.DelayByCategory["1"] != 4 || out.IdleByCrewCode["1A"] != 2 {
		t.Fatalf("unexpected bottlenecks %#v", out)
	}
	if out.DelaySummary.Max != 4 {
		t.Fatalf("summary %#v", out.DelaySummary)
	}
}

func TestSuggestHandler(t *testing.T) {
	p := newStub()
	h := NewHandler(p, logger.NopLogger{})
	body := strings.NewReader(`{"target_days": 2, "max_steps": 5, "capacities": {"1": 2}}`)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/suggest", body))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out suggest.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Capacities["1"] != 2 || out.Steps != 1 {
		t.Fatalf("unexpected result %#v", out)
	}
	if p.lastReq.TargetDays != 2 || p.lastReq.MaxSteps != 5 {
		t.Fatalf("request not forwarded: %#v", p.lastReq)
	}
	if p.lastCaps["1"] != 2 {
		t.Fatalf("capacities not forwarded: %#v", p.lastCaps)
	}
}

func TestSuggestHandlerBadRequest(t *testing.T) {
	h := NewHandler(newStub(), logger.NopLogger{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/suggest", strings.NewReader(`{"target_days": -1}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("negative target: status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/suggest", strings.NewReader(`not json`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad body: status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/suggest", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("get: status %d", rr.Code)
	}
}
