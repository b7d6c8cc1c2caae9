// Package cli implements the gitkit command line interface, a small
// Git client built on the library's handle surface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gitkit",
		Short:        "Gitkit is a small Git client built on the gitkit object-graph library",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newDiscoverCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newLsTreeCmd())
	rootCmd.AddCommand(newCatFileCmd())
	rootCmd.AddCommand(newHashObjectCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newCheckoutHeadCmd())

	return rootCmd
}
