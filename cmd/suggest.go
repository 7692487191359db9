package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Kirankkt/Construction-Scheduler-2/app"
	"github.com/Kirankkt/Construction-Scheduler-2/config"
)

var (
	suggestTarget   float64
	suggestMaxSteps int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Search for crew capacities that meet the target duration",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().Float64Var(&suggestTarget, "target", 0, "target duration in days (default: scenario target)")
	suggestCmd.Flags().IntVar(&suggestMaxSteps, "max-steps", 0, "capacity increment budget (default: scenario budget)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	res := svc.Suggest(suggestTarget, suggestMaxSteps, nil)

	out := cmd.OutOrStdout()
	cats := make([]string, 0, len(res.Capacities))
	for c := range res.Capacities {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Fprintf(out, "category %-4s capacity %d\n", c, res.Capacities[c])
	}
	fmt.Fprintf(out, "\nduration: %.2f days after %d increments\n", res.DurationDays, res.Steps)
	if !svc.Scenario().PoolByCategory {
		fmt.Fprintln(out, "note: pooling is disabled; capacities do not affect the schedule")
	}
	return nil
}
