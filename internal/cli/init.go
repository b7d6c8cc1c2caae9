package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}

			repo, err := gitkit.Init(path, bare)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			splog := newSplog()
			defer splog.Close()
			splog.Info("Initialized empty repository in %s", repo.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "Create a bare repository without a working directory")

	return cmd
}
