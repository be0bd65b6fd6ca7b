package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Multiple choice quizzes over your cards",
	Long: `Quizzes are built from a course's cards. With quiz.provider set to
anthropic, openai, gemini or openrouter a model writes the questions;
otherwise, or when the model fails, other cards' answers serve as the
wrong options. Take quizzes from the TAKE QUIZ menu of the app.`,
}

var quizPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a quiz with its answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseRef, _ := cmd.Flags().GetString("course")
		n, _ := cmd.Flags().GetInt("questions")
		from, _ := cmd.Flags().GetString("from")

		var text string
		if from != "" {
			b, err := os.ReadFile(from)
			if err != nil {
				return fmt.Errorf("read notes: %w", err)
			}
			text = string(b)
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return previewQuiz(cmd.Context(), cmd.OutOrStdout(), e, courseRef, n, text)
	},
}

func init() {
	pf := quizPreviewCmd.Flags()
	pf.String("course", "", "Course ID or name (optional with a single course)")
	pf.IntP("questions", "n", 0, "Number of questions (default quiz.questions)")
	pf.String("from", "", "Text file of notes to add to the material")
	pf.String("provider", "", "Override quiz.provider: local, anthropic, openai, gemini or openrouter")
	pf.String("model", "", "Override quiz.model")

	quizCmd.AddCommand(quizPreviewCmd)
}

func previewQuiz(ctx context.Context, out io.Writer, e *env, courseRef string, n int, text string) error {
	c, err := pickCourse(ctx, e, courseRef)
	if err != nil {
		return err
	}
	q, err := e.deps.Quiz.Build(ctx, c.ID, n, text)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s quiz · %d questions · %s\n\n", q.CourseName, len(q.Questions), q.Source)
	for i, qu := range q.Questions {
		fmt.Fprintf(out, "%d. %s\n", i+1, qu.Prompt)
		for j, o := range qu.Options {
			mark := " "
			if j == qu.Correct {
				mark = "*"
			}
			fmt.Fprintf(out, "  %s %c) %s\n", mark, 'A'+j, o)
		}
		if qu.Explanation != "" {
			fmt.Fprintf(out, "    %s\n", qu.Explanation)
		}
		fmt.Fprintln(out)
	}
	return nil
}
