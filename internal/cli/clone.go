package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
)

// newCloneCmd creates the clone command
func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone <url> [path]",
		Short: "Clone a repository into a new directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			url := args[0]
			path := defaultClonePath(url)
			if len(args) > 1 {
				path = args[1]
			}

			splog := newSplog()
			defer splog.Close()
			splog.Info("Cloning into %q...", path)

			repo, err := gitkit.Clone(url, path)
			if err != nil {
				return fmt.Errorf("failed to clone %s: %w", url, err)
			}

			head, err := repo.Head()
			if err != nil {
				return err
			}
			if head != nil {
				if branch, ok := head.BranchName(); ok {
					splog.Debug("checked out branch %s", branch)
				}
			}
			return nil
		},
	}

	return cmd
}

// defaultClonePath derives a target directory from the source URL the
// way git does: the last path segment, minus a .git suffix.
func defaultClonePath(url string) string {
	base := filepath.Base(strings.TrimRight(url, "/"))
	return strings.TrimSuffix(base, ".git")
}
