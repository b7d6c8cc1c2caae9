package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRmCmd creates the rm command
func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files from the index",
		Long: `Remove files from the index. The working tree copy is left in
place; only the staged entry is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			idx, err := repo.Index()
			if err != nil {
				return err
			}

			for _, path := range args {
				if err := idx.RemoveByPath(path); err != nil {
					return fmt.Errorf("failed to remove %q: %w", path, err)
				}
			}
			if err := idx.Write(); err != nil {
				return fmt.Errorf("failed to write index: %w", err)
			}
			return nil
		},
	}

	return cmd
}
