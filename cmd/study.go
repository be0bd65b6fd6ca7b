package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/study"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Log and list timed study sessions",
}

var studyLogCmd = &cobra.Command{
	Use:   "log <minutes>",
	Short: "Log a study session for a course",
	Long: `Log time spent studying outside the timer. The session counts toward
today's streak and earns a coin for every five minutes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("minutes must be a whole number, got %q", args[0])
		}
		f := cmd.Flags()
		courseRef, _ := f.GetString("course")
		date, _ := f.GetString("date")
		notes, _ := f.GetString("notes")
		reflection, _ := f.GetString("reflection")
		mood, _ := f.GetInt("mood")
		focus, _ := f.GetInt("focus")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		c, err := pickCourse(cmd.Context(), e, courseRef)
		if err != nil {
			return err
		}
		res, err := e.deps.Study.Log(cmd.Context(), study.Draft{
			CourseID:   c.ID,
			Date:       date,
			Minutes:    minutes,
			Notes:      notes,
			Reflection: reflection,
			Mood:       mood,
			Focus:      focus,
		})
		if err != nil {
			return err
		}
		printStudyResult(cmd.OutOrStdout(), c, res)
		return nil
	},
}

var studyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseRef, _ := cmd.Flags().GetString("course")
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listStudy(cmd.Context(), cmd.OutOrStdout(), e, courseRef, limit)
	},
}

func init() {
	lf := studyLogCmd.Flags()
	lf.String("course", "", "Course ID or name (optional with a single course)")
	lf.String("date", "", "Day studied as YYYY-MM-DD (default today)")
	lf.String("notes", "", "What you covered")
	lf.String("reflection", "", "How it went")
	lf.Int("mood", 0, "Mood from 1 to 5 (default 3)")
	lf.Int("focus", 0, "Focus from 1 to 5 (default 3)")

	studyListCmd.Flags().String("course", "", "Only show one course")
	studyListCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")

	studyCmd.AddCommand(studyLogCmd)
	studyCmd.AddCommand(studyListCmd)
}

func printStudyResult(out io.Writer, c course.Course, res study.Result) {
	fmt.Fprintf(out, "Logged %s of %s on %s\n", study.FormatMinutes(res.Session.Minutes), c.Name, res.Session.Date)
	for _, a := range res.Awards {
		fmt.Fprintf(out, "  %s %+d %s\n", a.Type.Icon(), a.Amount, a.Reason)
	}
}

func listStudy(ctx context.Context, out io.Writer, e *env, courseRef string, limit int) error {
	courseID := ""
	if courseRef != "" {
		c, err := findCourse(ctx, e, courseRef)
		if err != nil {
			return err
		}
		courseID = c.ID
	}
	sessions, err := e.deps.Study.List(ctx, courseID, limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No study sessions yet. Log one with: koko study log <minutes>")
		return nil
	}
	names, err := courseNames(ctx, e)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-10s  %-20s  %8s  %4s  %5s  %s\n", "Date", "Course", "Time", "Mood", "Focus", "Notes")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	total := 0
	for _, s := range sessions {
		fmt.Fprintf(out, "%-10s  %-20s  %8s  %4d  %5d  %s\n",
			s.Date, truncate(names[s.CourseID], 20), study.FormatMinutes(s.Minutes), s.Mood, s.Focus, truncate(s.Notes, 30))
		total += s.Minutes
	}
	fmt.Fprintf(out, "\n%d sessions, %s\n", len(sessions), study.FormatMinutes(total))
	return nil
}

// pickCourse resolves ref, or the only course when ref is empty.
func pickCourse(ctx context.Context, e *env, ref string) (course.Course, error) {
	if ref != "" {
		return findCourse(ctx, e, ref)
	}
	courses, err := e.deps.Courses.List(ctx)
	if err != nil {
		return course.Course{}, err
	}
	switch len(courses) {
	case 0:
		return course.Course{}, fmt.Errorf("no courses yet; create one with: koko courses add <name>")
	case 1:
		return courses[0], nil
	default:
		return course.Course{}, fmt.Errorf("%d courses exist; pick one with --course", len(courses))
	}
}

func courseNames(ctx context.Context, e *env) (map[string]string, error) {
	courses, err := e.deps.Courses.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names, nil
}
