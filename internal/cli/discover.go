package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
)

// newDiscoverCmd creates the discover command
func newDiscoverCmd() *cobra.Command {
	var (
		acrossFS    bool
		ceilingDirs string
	)

	cmd := &cobra.Command{
		Use:   "discover [start]",
		Short: "Locate the git directory governing a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) > 0 {
				start = args[0]
			} else if cwd, err := os.Getwd(); err == nil {
				start = cwd
			}

			gitDir, found := gitkit.Discover(start, acrossFS, ceilingDirs)
			if !found {
				return fmt.Errorf("no repository found from %s", start)
			}
			fmt.Fprintln(cmd.OutOrStdout(), gitDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&acrossFS, "across-fs", false, "Continue the search across filesystem boundaries")
	cmd.Flags().StringVar(&ceilingDirs, "ceiling-dirs", "", "Colon-separated list of directories the search must not pass")

	return cmd
}
