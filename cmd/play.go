package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("fresh", false, "Start from stage 1.1 instead of resuming")
	rootCmd.Flags().Bool("fresh", false, "Start from stage 1.1 instead of resuming")
}
