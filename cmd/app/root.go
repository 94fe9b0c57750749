package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	dev        bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	serve := newServeCommand(flags)
	rootCmd := &cobra.Command{
		Use:           "aura",
		Short:         "Aura conversational assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is normal outside local development.
			_ = godotenv.Load()
		},
		RunE: serve.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.dev, "dev", false, "developer mode: console logs, unredacted messages")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newAskCommand(flags))
	rootCmd.AddCommand(newChatCommand(flags))
	return rootCmd
}
