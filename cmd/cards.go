package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/flashcard"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Add, list and edit flashcards",
}

var cardsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a flashcard to a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ref, _ := cmd.Flags().GetString("course")
		q, _ := cmd.Flags().GetString("question")
		a, _ := cmd.Flags().GetString("answer")
		card, err := addCard(cmd.Context(), e, ref, q, a)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added card %s, due %s\n", card.ID, card.NextReview)
		return nil
	},
}

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ref, _ := cmd.Flags().GetString("course")
		dueOnly, _ := cmd.Flags().GetBool("due")
		return listCards(cmd.Context(), cmd.OutOrStdout(), e, ref, dueOnly)
	},
}

var cardsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a card's question, answer or difficulty",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		var edit flashcard.Edit
		if cmd.Flags().Changed("question") {
			q, _ := cmd.Flags().GetString("question")
			edit.Question = &q
		}
		if cmd.Flags().Changed("answer") {
			a, _ := cmd.Flags().GetString("answer")
			edit.Answer = &a
		}
		if cmd.Flags().Changed("difficulty") {
			s, _ := cmd.Flags().GetString("difficulty")
			d, err := flashcard.ParseDifficulty(s)
			if err != nil {
				return err
			}
			edit.Difficulty = &d
		}
		if edit.IsEmpty() {
			return fmt.Errorf("nothing to change: pass --question, --answer or --difficulty")
		}

		card, err := e.deps.Cards.Edit(cmd.Context(), args[0], edit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated card %s\n", card.ID)
		return nil
	},
}

func init() {
	cardsAddCmd.Flags().String("course", "", "Course ID or name (optional when there is only one course)")
	cardsAddCmd.Flags().StringP("question", "q", "", "Front of the card (required)")
	cardsAddCmd.Flags().StringP("answer", "a", "", "Back of the card (required)")
	_ = cardsAddCmd.MarkFlagRequired("question")
	_ = cardsAddCmd.MarkFlagRequired("answer")

	cardsListCmd.Flags().String("course", "", "Only show cards of this course")
	cardsListCmd.Flags().Bool("due", false, "Only show cards due today")

	cardsEditCmd.Flags().StringP("question", "q", "", "New question")
	cardsEditCmd.Flags().StringP("answer", "a", "", "New answer")
	cardsEditCmd.Flags().String("difficulty", "", "New difficulty: easy, medium or hard")

	cardsCmd.AddCommand(cardsAddCmd)
	cardsCmd.AddCommand(cardsListCmd)
	cardsCmd.AddCommand(cardsEditCmd)
}

func addCard(ctx context.Context, e *env, courseRef, question, answer string) (flashcard.Card, error) {
	c, err := pickCourse(ctx, e, courseRef)
	if err != nil {
		return flashcard.Card{}, err
	}
	draft := flashcard.Draft{CourseID: c.ID, Question: question, Answer: answer}
	return e.deps.Cards.Create(ctx, draft)
}

func listCards(ctx context.Context, out io.Writer, e *env, courseRef string, dueOnly bool) error {
	var courseID string
	if courseRef != "" {
		c, err := findCourse(ctx, e, courseRef)
		if err != nil {
			return err
		}
		courseID = c.ID
	}

	cards, err := e.deps.Cards.List(ctx)
	if err != nil {
		return err
	}
	today := e.deps.Cards.Today()

	var shown []flashcard.Card
	for _, c := range cards {
		if courseID != "" && c.CourseID != courseID {
			continue
		}
		if dueOnly && !c.IsDue(today) {
			continue
		}
		shown = append(shown, c)
	}
	if len(shown) == 0 {
		fmt.Fprintln(out, "No cards found.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-30s  %-6s  %-10s  %s\n", "ID", "Question", "Level", "Next", "Reviews")
	fmt.Fprintln(out, strings.Repeat("─", 100))
	for _, c := range shown {
		next := c.NextReview.String()
		if c.IsDue(today) {
			next = "due"
		}
		fmt.Fprintf(out, "%-36s  %-30s  %-6s  %-10s  %d\n",
			c.ID, truncate(c.Question, 30), c.Difficulty, next, c.ReviewCount)
	}
	fmt.Fprintf(out, "\n%d cards\n", len(shown))
	return nil
}
