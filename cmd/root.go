package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "koko",
	Short: "Study tracker with spaced-repetition flashcards",
	Long: `Koko is a terminal study companion. Add flashcards to courses, review
the ones due today and keep your companion happy with a daily streak.
Log study time, track goals and notes, quiz yourself and spend the coins
you earn on outfits.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/koko/config.yaml)")
	pf.String("env-file", ".env", "Load environment variables from this file if it exists")
	pf.String("db", "", "Database DSN or SQLite file path (overrides KOKO_DATABASE__DSN)")
	pf.String("driver", "", "Database driver: sqlite or postgres")
	pf.String("user", "", "User whose cards and profile to use")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(awardsCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(versionCmd)
}
