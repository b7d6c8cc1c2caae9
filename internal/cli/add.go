package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Stage files in the index",
		Args:  cobra.MinimumNArgs(1),
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
				if err := idx.AddByPath(path); err != nil {
					return fmt.Errorf("failed to stage %q: %w", path, err)
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
