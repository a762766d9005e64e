package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sweeper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweeper",
		Short: "Find and remove photos missing their JPEG or NEF pair",
		Long: `sweeper scans directories for odd photo files: a .jpg or .jpeg image
with no .nef raw file next to it, or a .nef raw file with neither a .jpeg
nor a .jpg image next to it.

Use "sweeper scan" to list odd files and "sweeper clean" to remove them
after confirmation. Symbolic links are followed; each file is reported once.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
