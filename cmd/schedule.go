package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Kirankkt/Construction-Scheduler-2/app"
	"github.com/Kirankkt/Construction-Scheduler-2/config"
)

var criticalOnly bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Level the plan once and print the schedule",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&criticalOnly, "critical-only", false, "print critical-path tasks only")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	sched, metrics, warnings := svc.Schedule()
	base := svc.Baseline()

	ids := make([]string, 0, len(sched))
	for id := range sched {
		if criticalOnly && !base.Info[id].Critical {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := sched[ids[i]], sched[ids[j]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return ids[i] < ids[j]
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %-40s %8s %8s %8s %6s\n", "ID", "Task", "Start", "Finish", "Delay", "Crit")
	for _, id := range ids {
		e := sched[id]
		crit := ""
		if base.Info[id].Critical {
			crit = "*"
		}
		fmt.Fprintf(out, "%-6s %-40s %8.1f %8.1f %8.1f %6s\n",
			id, truncate(e.Name, 40), e.Start, e.Finish, e.DelayVsBaselineStart, crit)
	}
	fmt.Fprintf(out, "\nproject duration: %.2f days (%d tasks)\n", metrics.DurationDays, len(sched))
	if base.HasCycle {
		fmt.Fprintln(out, "warning: dependency cycle detected")
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
