package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crofth/ironup/internal/version"
)

var verbosity int

// NewRootCmd builds the ironup command. Running it with no subcommand
// starts the interactive provisioning run.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ironup",
		Short:         MsgShort,
		Long:          MsgLong,
		RunE:          runSetup,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Verbosity flag for console logging; the log file always records debug
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for ironup`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ironup version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
