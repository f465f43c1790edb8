package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"karmaforge/internal/theme"
)

const defaultConfigPath = "./karmaforge.yaml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "karmaforge",
		Short: "Automated Reddit reply bot with quota-aware pacing",
		Long: theme.Banner() + `
karmaforge discovers trending submissions in the configured subreddits,
ranks them by how likely a fresh comment is to collect upvotes, drafts
replies with an LLM, and posts them under a daily quota with randomized
delays between replies.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDiscoverCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("karmaforge v1.0.0")
		},
	}
}
