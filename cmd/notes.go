package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Kirankkt/Construction-Scheduler-2/config"
	"github.com/Kirankkt/Construction-Scheduler-2/ingest"
)

var matchLimit int

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Drawing note commands",
}

var notesRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Re-extract notes from drawing exports into the cache",
	RunE:  runNotesRebuild,
}

var notesMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match cached notes against plan tasks",
	RunE:  runNotesMatch,
}

func init() {
	notesMatchCmd.Flags().IntVar(&matchLimit, "limit", 3, "candidates per note")
	notesCmd.AddCommand(notesRebuildCmd)
	notesCmd.AddCommand(notesMatchCmd)
	rootCmd.AddCommand(notesCmd)
}

func runNotesRebuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(cfg.Ingest.NotesDir, "*.txt"))
	if err != nil {
		return fmt.Errorf("scan notes dir: %w", err)
	}
	notes, err := ingest.RebuildNotesCache(paths, cfg.Ingest.NotesCachePath)
	if err != nil {
		return fmt.Errorf("rebuild cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cached %d notes from %d files\n", len(notes), len(paths))
	return nil
}

func runNotesMatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	notes := ingest.LoadNotesFromCache(cfg.Ingest.NotesCachePath)
	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no cached notes; run 'notes rebuild' first")
		return nil
	}
	res, err := ingest.ParseCSV(cfg.Ingest.CSVPath, ingest.Options{AutoChain: cfg.Scenario.AutoChain})
	if err != nil {
		return fmt.Errorf("parse plan: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, nm := range ingest.MatchNotes(notes, res.Tasks, matchLimit) {
		fmt.Fprintf(out, "note: %s\n", nm.Note)
		for _, m := range nm.Matches {
			fmt.Fprintf(out, "  %3d%%  %s  %s\n", m.Score, m.TaskID, m.Name)
		}
	}
	return nil
}
