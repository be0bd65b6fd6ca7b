package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/notes"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Keep a daily log of what you learned",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Write down something you learned",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseRef, _ := cmd.Flags().GetString("course")
		date, _ := cmd.Flags().GetString("date")
		tags, _ := cmd.Flags().GetStringSlice("tag")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := addNote(cmd.Context(), e, courseRef, date, strings.Join(args, " "), tags)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Noted for %s (%s)\n", n.Date, n.ID)
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseRef, _ := cmd.Flags().GetString("course")
		tag, _ := cmd.Flags().GetString("tag")
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listNotes(cmd.Context(), cmd.OutOrStdout(), e, courseRef, tag, limit)
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		all, err := e.notes.List(cmd.Context(), notes.Filter{})
		if err != nil {
			return err
		}
		n, err := matchID(all, args[0], func(n notes.Note) string { return n.ID }, notes.ErrNotFound)
		if err != nil {
			return err
		}
		if err := e.notes.Delete(cmd.Context(), n.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted note from %s\n", n.Date)
		return nil
	},
}

func init() {
	notesAddCmd.Flags().String("course", "", "Tie the note to a course (ID or name)")
	notesAddCmd.Flags().String("date", "", "Day as YYYY-MM-DD (default today)")
	notesAddCmd.Flags().StringSlice("tag", nil, "Tag the note; repeat or separate with commas")

	notesListCmd.Flags().String("course", "", "Only show one course")
	notesListCmd.Flags().String("tag", "", "Only show notes with this tag")
	notesListCmd.Flags().Int("limit", 20, "Maximum number of notes to show")

	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesDeleteCmd)
}

func addNote(ctx context.Context, e *env, courseRef, date, content string, tags []string) (notes.Note, error) {
	d := notes.Draft{Date: date, Content: content, Tags: tags}
	if courseRef != "" {
		c, err := findCourse(ctx, e, courseRef)
		if err != nil {
			return notes.Note{}, err
		}
		d.CourseID = c.ID
	}
	return e.notes.Add(ctx, d)
}

func listNotes(ctx context.Context, out io.Writer, e *env, courseRef, tag string, limit int) error {
	f := notes.Filter{Tag: tag, Limit: limit}
	if courseRef != "" {
		c, err := findCourse(ctx, e, courseRef)
		if err != nil {
			return err
		}
		f.CourseID = c.ID
	}
	all, err := e.notes.List(ctx, f)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No notes yet. Add one with: koko notes add <text>")
		return nil
	}
	names, err := courseNames(ctx, e)
	if err != nil {
		return err
	}

	for _, n := range all {
		head := n.Date.String()
		if name := names[n.CourseID]; name != "" {
			head += " · " + name
		}
		fmt.Fprintf(out, "%s  %s\n", n.ID[:min(8, len(n.ID))], head)
		fmt.Fprintf(out, "  %s\n", n.Content)
		if len(n.Tags) > 0 {
			fmt.Fprintf(out, "  #%s\n", strings.Join(n.Tags, " #"))
		}
		fmt.Fprintln(out)
	}
	return nil
}
