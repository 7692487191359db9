package schedule

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/Kirankkt/Construction-Scheduler-2/core/analysis"
	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/logger"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
	"github.com/Kirankkt/Construction-Scheduler-2/core/suggest"
)

// Planner is the read side of the scheduling service the handlers expose.
type Planner interface {
	// Schedule levels the working set and returns the placements, the
	// derived project metrics and any warnings, including the target
	// overrun warning when the scenario enforces a target.
	Schedule() (model.Schedule, analysis.ProjectMetrics, []string)
	// Baseline returns the unconstrained critical-path numbers.
	Baseline() cpm.Baseline
	// Bottlenecks aggregates contention indicators over a fresh leveling
	// run.
	Bottlenecks() (analysis.Bottlenecks, analysis.DelaySummary)
	// Suggest searches for category capacities meeting the target,
	// starting from the given capacities (nil means the scenario's).
	Suggest(targetDays float64, maxSteps int, initial map[string]int) suggest.Result
}

type scheduleResponse struct {
	DurationDays float64        `json:"duration_days"`
	HasCycle     bool           `json:"has_cycle"`
	Warnings     []string       `json:"warnings,omitempty"`
	Entries      model.Schedule `json:"entries"`
}

type criticalPathResponse struct {
	ProjectFinishHours float64                  `json:"project_finish_hours"`
	HasCycle           bool                     `json:"has_cycle"`
	CriticalIDs        []string                 `json:"critical_ids"`
	Info               map[string]model.CpmInfo `json:"info"`
}

type bottlenecksResponse struct {
	DelayByCategory map[string]float64    `json:"delay_by_category"`
	IdleByCrewCode  map[string]float64    `json:"idle_by_crew_code"`
	DelaySummary    analysis.DelaySummary `json:"delay_summary"`
}

type suggestRequest struct {
	TargetDays float64        `json:"target_days"`
	MaxSteps   int            `json:"max_steps"`
	Capacities map[string]int `json:"capacities"`
}

// NewHandler returns the HTTP control surface for a planner.
func NewHandler(p Planner, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/schedule", getOnly(scheduleHandler(p, log)))
	mux.Handle("/api/critical-path", getOnly(criticalPathHandler(p, log)))
	mux.Handle("/api/bottlenecks", getOnly(bottlenecksHandler(p, log)))
	mux.Handle("/api/suggest", suggestHandler(p, log))
	return mux
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, log logger.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func scheduleHandler(p Planner, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sched, metrics, warnings := p.Schedule()
		writeJSON(w, log, scheduleResponse{
			DurationDays: metrics.DurationDays,
			HasCycle:     p.Baseline().HasCycle,
			Warnings:     warnings,
			Entries:      sched,
		})
	})
}

func criticalPathHandler(p Planner, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base := p.Baseline()
		criticalOnly := r.URL.Query().Get("critical_only") == "true"

		info := make(map[string]model.CpmInfo, len(base.Info))
		criticalIDs := make([]string, 0)
		for id, ci := range base.Info {
			if ci.Critical {
				criticalIDs = append(criticalIDs, id)
			}
			if criticalOnly && !ci.Critical {
				continue
			}
			info[id] = ci
		}
		sort.Slice(criticalIDs, func(i, j int) bool {
			a, b := base.Info[criticalIDs[i]], base.Info[criticalIDs[j]]
			if a.EarliestStart != b.EarliestStart {
				return a.EarliestStart < b.EarliestStart
			}
			return criticalIDs[i] < criticalIDs[j]
		})

		writeJSON(w, log, criticalPathResponse{
			ProjectFinishHours: base.ProjectFinish,
			HasCycle:           base.HasCycle,
			CriticalIDs:        criticalIDs,
			Info:               info,
		})
	})
}

func bottlenecksHandler(p Planner, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, summary := p.Bottlenecks()
		writeJSON(w, log, bottlenecksResponse{
			DelayByCategory: b.DelayByCategory,
			IdleByCrewCode:  b.IdleByCrewCode,
			DelaySummary:    summary,
		})
	})
}

func suggestHandler(p Planner, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req suggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.TargetDays <= 0 {
			http.Error(w, "target_days must be positive", http.StatusBadRequest)
			return
		}
		res := p.Suggest(req.TargetDays, req.MaxSteps, req.Capacities)
		writeJSON(w, log, res)
	})
}
