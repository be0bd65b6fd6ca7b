package cmd

import (
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session with today's due cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}
