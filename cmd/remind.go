package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Remind you every day when cards are due",
	Long: `Run in the foreground and print a reminder at reminder.at each day when
cards are due. Use --once to check right now and exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetBool("once")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		svc := reminder.New(e.deps.Cards, e.deps.Theme, reminder.WriterNotifier{W: out}, e.log)

		if once {
			sent, err := svc.Check(cmd.Context())
			if err != nil {
				return err
			}
			if !sent {
				fmt.Fprintf(out, "%s: nothing due today. Enjoy your break!\n", e.deps.Theme.Labels.Companion)
			}
			return nil
		}

		if !e.cfg.Reminder.Enabled {
			fmt.Fprintln(out, "Reminders are disabled. Set reminder.enabled: true to turn them on.")
			return nil
		}
		if err := svc.Schedule(e.cfg.Reminder.At); err != nil {
			return err
		}
		svc.Start()
		defer svc.Stop()

		fmt.Fprintf(out, "Next reminder at %s. Press Ctrl+C to stop.\n", svc.NextRun().Format("Mon 15:04"))
		e.log.Info("reminder scheduler running", zap.String("at", e.cfg.Reminder.At))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

func init() {
	remindCmd.Flags().Bool("once", false, "Check for due cards now and exit")
}
