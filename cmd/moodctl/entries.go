package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"mood-journal/internal/client"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func (a *app) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a mood (0-10)",
		Long: `Record a mood rating between 0 and 10 with an optional note.

Examples:
  moodctl add --mood 7
  moodctl add --mood 3 --note "rough day" --date 2024-05-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			mood, _ := cmd.Flags().GetInt("mood")
			note, _ := cmd.Flags().GetString("note")
			dateStr, _ := cmd.Flags().GetString("date")

			var date *time.Time
			if dateStr != "" {
				d, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", dateStr)
				}
				date = &d
			}
			e, err := a.client.CreateEntry(cmd.Context(), date, mood, note)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (mood %d on %s)\n", e.ID, e.Mood, e.Date.Local().Format(dateLayout))
			return nil
		},
	}
	cmd.Flags().Int("mood", 0, "mood rating 0-10")
	cmd.Flags().String("note", "", "optional note")
	cmd.Flags().String("date", "", "entry date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			entries, err := a.client.ListEntries(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tMOOD\tNOTE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.ID, e.Date.Local().Format(dateLayout), e.Mood, e.Note)
			}
			return w.Flush()
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.client.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show average, latest entry, a mood chart and some encouragement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			entries, err := a.client.ListEntries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s := client.Summarize(entries)
			fmt.Fprintf(out, "Entries: %d\n", s.Count)
			if s.Latest != nil {
				fmt.Fprintf(out, "Average: %.1f\n", s.Average)
				fmt.Fprintf(out, "Latest:  %d on %s\n", s.Latest.Mood, s.Latest.Date.Local().Format(dateLayout))
			}
			fmt.Fprintln(out)
			if err := client.Chart(entries, out); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, client.RandomQuote())
			return nil
		},
	}
}
