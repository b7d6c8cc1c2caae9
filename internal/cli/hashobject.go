package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
)

// newHashObjectCmd creates the hash-object command
func newHashObjectCmd() *cobra.Command {
	var useStdin bool

	cmd := &cobra.Command{
		Use:   "hash-object [file]",
		Short: "Write a file or stdin into the object database as a blob",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			var blob *gitkit.Blob
			switch {
			case useStdin:
				blob, err = repo.CreateBlobFromReader(os.Stdin)
			case len(args) == 1:
				blob, err = repo.CreateBlobFromDisk(args[0])
			default:
				return fmt.Errorf("either a file argument or --stdin is required")
			}
			if err != nil {
				return fmt.Errorf("failed to write blob: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), blob.ID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read the blob content from standard input")

	return cmd
}
