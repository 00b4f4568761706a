package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "pitcheval",
		Short:         "Pitch deck evaluator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is normal outside development.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level written to stderr (debug, info, warn, error)")

	rootCmd.AddCommand(newEvaluateCommand(&logLevel))
	rootCmd.AddCommand(newRubricCommand())

	return rootCmd
}
