package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/study"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your streak, rewards, study time and due cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return printStats(cmd.Context(), cmd.OutOrStdout(), e)
	},
}

func printStats(ctx context.Context, out io.Writer, e *env) error {
	cards, err := e.deps.Cards.List(ctx)
	if err != nil {
		return err
	}
	today := e.deps.Cards.Today()
	due := 0
	for _, c := range cards {
		if c.IsDue(today) {
			due++
		}
	}
	ov, err := e.deps.Rewards.Overview(ctx, today, due)
	if err != nil {
		return err
	}

	last := "never"
	if ov.Stats.LastStudyDate != nil {
		last = ov.Stats.LastStudyDate.String()
	}
	week, err := e.deps.Study.ThisWeek(ctx)
	if err != nil {
		return err
	}
	th := e.deps.Theme
	outfit := "usual look"
	if o, ok := e.deps.Rewards.Outfit(ov.Companion.CurrentOutfit); ok {
		outfit = o.Emoji + " " + o.Name
	}

	fmt.Fprintf(out, "%s %s is %s %s\n\n", th.Assets.Badge, th.Labels.Companion, ov.Mood, ov.Mood.Icon())
	fmt.Fprintf(out, "Streak:        %d days (longest %d)\n", ov.Streak, ov.Stats.LongestStreak)
	fmt.Fprintf(out, "Last studied:  %s\n", last)
	fmt.Fprintf(out, "Coins:         %d\n", ov.Companion.Funds)
	fmt.Fprintf(out, "Bus tickets:   %d\n", ov.Companion.BusTickets)
	fmt.Fprintf(out, "Wearing:       %s\n", outfit)
	fmt.Fprintf(out, "Study time:    %s\n", study.FormatMinutes(ov.Stats.StudyMinutes))
	fmt.Fprintf(out, "This week:     %d sessions, %s\n", week.Sessions, study.FormatMinutes(week.Minutes))
	fmt.Fprintf(out, "Sessions:      %d\n", ov.Stats.TotalSessions)
	fmt.Fprintf(out, "Reviews:       %d\n", ov.Stats.TotalReviews)
	fmt.Fprintf(out, "Due today:     %d of %d cards\n", due, len(cards))
	return nil
}
