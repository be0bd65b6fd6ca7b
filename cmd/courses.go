package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/study"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage courses",
}

var coursesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		color, _ := cmd.Flags().GetString("color")
		icon, _ := cmd.Flags().GetString("icon")
		goal, _ := cmd.Flags().GetString("goal")
		c, err := e.deps.Courses.Create(cmd.Context(), course.Draft{Name: args[0], Color: color, Icon: icon, Goal: goal})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created course %s (%s)\n", c.Name, c.ID)
		return nil
	},
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses with their card counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listCourses(cmd.Context(), cmd.OutOrStdout(), e)
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a course that has no cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		c, err := findCourse(cmd.Context(), e, args[0])
		if err != nil {
			return err
		}
		if err := e.deps.Courses.Delete(cmd.Context(), c.ID); err != nil {
			if errors.Is(err, course.ErrInUse) {
				return fmt.Errorf("course %q still has cards; move or delete them first", c.Name)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted course %s\n", c.Name)
		return nil
	},
}

func init() {
	coursesAddCmd.Flags().String("color", "", "One of: "+strings.Join(course.Palette, ", ")+" (default rose)")
	coursesAddCmd.Flags().String("icon", "", "Short icon shown next to the name (default 📚)")
	coursesAddCmd.Flags().String("goal", "", "What you want to get out of the course")

	coursesCmd.AddCommand(coursesAddCmd)
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)
}

func listCourses(ctx context.Context, out io.Writer, e *env) error {
	courses, err := e.deps.Courses.List(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(out, "No courses yet. Create one with: koko courses add <name>")
		return nil
	}

	cards, err := e.deps.Cards.List(ctx)
	if err != nil {
		return err
	}
	today := e.deps.Cards.Today()
	total := make(map[string]int)
	due := make(map[string]int)
	for _, c := range cards {
		total[c.CourseID]++
		if c.IsDue(today) {
			due[c.CourseID]++
		}
	}

	fmt.Fprintf(out, "%-36s  %-24s  %-6s  %5s  %5s  %8s  %s\n", "ID", "Name", "Color", "Cards", "Due", "Studied", "Goal")
	fmt.Fprintln(out, strings.Repeat("─", 110))
	for _, c := range courses {
		name := c.Name
		if c.Icon != "" {
			name = c.Icon + " " + name
		}
		fmt.Fprintf(out, "%-36s  %-24s  %-6s  %5d  %5d  %8s  %s\n",
			c.ID, truncate(name, 24), c.Color, total[c.ID], due[c.ID], study.FormatMinutes(c.TotalMinutes), c.Goal)
	}
	fmt.Fprintf(out, "\n%d courses\n", len(courses))
	return nil
}

// findCourse matches ref against course IDs, then names (case-insensitive).
func findCourse(ctx context.Context, e *env, ref string) (course.Course, error) {
	courses, err := e.deps.Courses.List(ctx)
	if err != nil {
		return course.Course{}, err
	}
	for _, c := range courses {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range courses {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return course.Course{}, fmt.Errorf("course %q: %w", ref, course.ErrNotFound)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
