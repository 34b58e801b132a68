package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "counseling-bot",
		Short: "Telegram bot for the counseling portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(renderMonthCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
