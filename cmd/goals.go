package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/goals"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Track study goals and their progress",
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		courseRef, _ := f.GetString("course")
		desc, _ := f.GetString("description")
		target, _ := f.GetString("target")
		progress, _ := f.GetInt("progress")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		d := goals.Draft{Title: args[0], Description: desc, TargetDate: target, Progress: progress}
		if courseRef != "" {
			c, err := findCourse(cmd.Context(), e, courseRef)
			if err != nil {
				return err
			}
			d.CourseID = c.ID
		}
		g, err := e.goals.Add(cmd.Context(), d)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added goal %q (%s)\n", g.Title, g.ID)
		return nil
	},
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		open, _ := cmd.Flags().GetBool("open")
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listGoals(cmd.Context(), cmd.OutOrStdout(), e, open)
	},
}

var goalsProgressCmd = &cobra.Command{
	Use:   "progress <id> <percent>",
	Short: "Set a goal's progress; 100 completes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
		if err != nil {
			return fmt.Errorf("percent must be a whole number, got %q", args[1])
		}
		return withGoal(cmd, args[0], func(ctx context.Context, e *env, g goals.Goal) error {
			g, err := e.goals.SetProgress(ctx, g.ID, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%%%s\n", g.Title, g.Progress, doneMark(g))
			return nil
		})
	},
}

var goalsDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a goal complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGoal(cmd, args[0], func(ctx context.Context, e *env, g goals.Goal) error {
			if _, err := e.goals.Complete(ctx, g.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %q 🎉\n", g.Title)
			return nil
		})
	},
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGoal(cmd, args[0], func(ctx context.Context, e *env, g goals.Goal) error {
			if err := e.goals.Delete(ctx, g.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %q\n", g.Title)
			return nil
		})
	},
}

func init() {
	af := goalsAddCmd.Flags()
	af.String("course", "", "Tie the goal to a course (ID or name)")
	af.String("description", "", "Longer description")
	af.String("target", "", "Target date as YYYY-MM-DD")
	af.Int("progress", 0, "Starting progress in percent")
	goalsListCmd.Flags().Bool("open", false, "Only show goals not yet completed")

	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsListCmd)
	goalsCmd.AddCommand(goalsProgressCmd)
	goalsCmd.AddCommand(goalsDoneCmd)
	goalsCmd.AddCommand(goalsDeleteCmd)
}

func withGoal(cmd *cobra.Command, ref string, fn func(context.Context, *env, goals.Goal) error) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	g, err := findGoal(cmd.Context(), e, ref)
	if err != nil {
		return err
	}
	return fn(cmd.Context(), e, g)
}

// findGoal matches ref against goal IDs, accepting a unique ID prefix.
func findGoal(ctx context.Context, e *env, ref string) (goals.Goal, error) {
	all, err := e.goals.List(ctx)
	if err != nil {
		return goals.Goal{}, err
	}
	return matchID(all, ref, func(g goals.Goal) string { return g.ID }, goals.ErrNotFound)
}

// matchID finds the item whose ID is ref, or the only one starting with it.
func matchID[T any](items []T, ref string, id func(T) string, notFound error) (T, error) {
	var zero T
	var hits []T
	for _, it := range items {
		switch {
		case id(it) == ref:
			return it, nil
		case ref != "" && strings.HasPrefix(id(it), ref):
			hits = append(hits, it)
		}
	}
	switch len(hits) {
	case 0:
		return zero, fmt.Errorf("%q: %w", ref, notFound)
	case 1:
		return hits[0], nil
	default:
		return zero, fmt.Errorf("%q matches %d items; use more of the ID", ref, len(hits))
	}
}

func doneMark(g goals.Goal) string {
	if g.Completed {
		return " ✓"
	}
	return ""
}

func listGoals(ctx context.Context, out io.Writer, e *env, openOnly bool) error {
	all, err := e.goals.List(ctx)
	if err != nil {
		return err
	}
	names, err := courseNames(ctx, e)
	if err != nil {
		return err
	}
	today := e.deps.Cards.Today()

	shown := 0
	for _, g := range all {
		if openOnly && g.Completed {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(out, "%-8s  %-32s  %-16s  %-10s  %s\n", "ID", "Goal", "Course", "Target", "Progress")
			fmt.Fprintln(out, strings.Repeat("─", 90))
		}
		target := "-"
		if !g.TargetDate.IsZero() {
			target = g.TargetDate.String()
		}
		status := fmt.Sprintf("%3d%%", g.Progress)
		switch {
		case g.Completed:
			status += " ✓"
		case g.Overdue(today):
			status += " overdue"
		}
		fmt.Fprintf(out, "%-8s  %-32s  %-16s  %-10s  %s\n",
			g.ID[:min(8, len(g.ID))], truncate(g.Title, 32), truncate(names[g.CourseID], 16), target, status)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(out, "No goals yet. Add one with: koko goals add <title>")
	}
	return nil
}
