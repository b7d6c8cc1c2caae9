package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/output"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var maxCount int

	cmd := &cobra.Command{
		Use:   "log [revision]",
		Short: "Show the first-parent history of a revision",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			rev := "HEAD"
			if len(args) > 0 {
				rev = args[0]
			}
			commit, err := resolveCommit(repo, rev)
			if err != nil {
				return err
			}

			for n := 0; commit != nil && (maxCount <= 0 || n < maxCount); n++ {
				author := commit.Author()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					output.ColorOID(shortOID(commit.ID())),
					summaryLine(commit.Message()),
					output.ColorDim(fmt.Sprintf("(%s <%s>)", author.Name, author.Email)),
				)

				commit, err = commit.NthGenAncestor(1)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxCount, "max-count", "n", 0, "Limit the number of commits shown")

	return cmd
}
