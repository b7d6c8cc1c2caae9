package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/internal/output"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show changed paths in the index and working tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			entries, err := repo.Status()
			if err != nil {
				return fmt.Errorf("failed to compute status: %w", err)
			}

			if len(entries) == 0 {
				splog := newSplog()
				defer splog.Close()
				splog.Info("nothing to commit, working tree clean")
				return nil
			}

			for _, entry := range entries {
				code := output.ColorStatusCode(statusCode(entry.Status))
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", code, entry.Path)
			}
			return nil
		},
	}

	return cmd
}

// statusCode renders a Status as git's two-column short format: index
// state on the left, worktree state on the right.
func statusCode(s gitkit.Status) (index, wt byte) {
	index, wt = ' ', ' '
	switch {
	case s.IndexNew:
		index = 'A'
	case s.IndexModified:
		index = 'M'
	case s.IndexDeleted:
		index = 'D'
	case s.IndexRenamed:
		index = 'R'
	case s.IndexTypeChange:
		index = 'T'
	}
	switch {
	case s.WtNew:
		index, wt = '?', '?'
	case s.WtModified:
		wt = 'M'
	case s.WtDeleted:
		wt = 'D'
	case s.WtTypeChange:
		wt = 'T'
	}
	if s.Ignored {
		index, wt = '!', '!'
	}
	return index, wt
}
