package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/rewards"
)

var awardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Inspect the reward event log",
}

var awardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent awards",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("type")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listAwards(cmd.Context(), cmd.OutOrStdout(), e, limit, rewards.AwardType(kind))
	},
}

var awardsSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List finished review sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listSessions(cmd.Context(), cmd.OutOrStdout(), e, limit)
	},
}

func init() {
	awardsListCmd.Flags().Int("limit", 20, "Maximum number of awards to show")
	awardsListCmd.Flags().String("type", "", "Only show one type: review, session, streak, study or purchase")
	awardsSessionsCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")

	awardsCmd.AddCommand(awardsListCmd)
	awardsCmd.AddCommand(awardsSessionsCmd)
}

func listAwards(ctx context.Context, out io.Writer, e *env, limit int, kind rewards.AwardType) error {
	// Filtering happens after the query, so fetch everything when filtering.
	queryLimit := limit
	if kind != "" {
		queryLimit = 0
	}
	awards, err := e.deps.Rewards.History(ctx, queryLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-19s  %-8s  %6s  %s\n", "Time", "Type", "Amount", "Reason")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	shown := 0
	for _, a := range awards {
		if kind != "" && a.Type != kind {
			continue
		}
		if limit > 0 && shown == limit {
			break
		}
		fmt.Fprintf(out, "%-19s  %-8s  %6s  %s\n",
			a.AwardedAt.Local().Format("2006-01-02 15:04:05"),
			a.Type,
			fmt.Sprintf("%+d", a.Amount),
			a.Reason,
		)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(out, "No awards yet. Review some cards!")
		return nil
	}

	totals, err := e.deps.Rewards.Totals(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, t := range rewards.AllAwardTypes() {
		fmt.Fprintf(out, "%s %-8s %d\n", t.Icon(), t.DisplayName(), totals[t])
	}
	return nil
}

func listSessions(ctx context.Context, out io.Writer, e *env, limit int) error {
	sessions, err := e.deps.Rewards.Sessions(ctx, limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return nil
	}

	fmt.Fprintf(out, "%-16s  %8s  %8s  %8s  %s\n", "Ended", "Reviewed", "Due", "Duration", "Coins")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, s := range sessions {
		coins := 0
		for _, a := range s.Awards {
			if a.Type != rewards.AwardStreak {
				coins += a.Amount
			}
		}
		fmt.Fprintf(out, "%-16s  %8d  %8d  %8s  %d\n",
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.Reviewed, s.Due, s.Duration.String(), coins)
	}
	return nil
}
