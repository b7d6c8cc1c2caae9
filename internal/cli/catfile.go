package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
)

// newCatFileCmd creates the cat-file command
func newCatFileCmd() *cobra.Command {
	var (
		showType bool
		showSize bool
	)

	cmd := &cobra.Command{
		Use:   "cat-file <object>",
		Short: "Show the content, type or size of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			oid, err := resolveOID(repo, args[0])
			if err != nil {
				return err
			}

			if blob, err := repo.LookupBlob(oid); err != nil {
				return err
			} else if blob != nil {
				switch {
				case showType:
					fmt.Fprintln(cmd.OutOrStdout(), gitkit.ObjectBlob)
				case showSize:
					fmt.Fprintln(cmd.OutOrStdout(), blob.Size())
				default:
					return blob.RawContent(func(data []byte) error {
						_, err := cmd.OutOrStdout().Write(data)
						return err
					})
				}
				return nil
			}

			if commit, err := repo.LookupCommit(oid); err != nil {
				return err
			} else if commit != nil {
				if showType {
					fmt.Fprintln(cmd.OutOrStdout(), gitkit.ObjectCommit)
					return nil
				}
				author := commit.Author()
				fmt.Fprintf(cmd.OutOrStdout(), "author %s <%s>\n\n%s",
					author.Name, author.Email, commit.Message())
				return nil
			}

			if tree, err := repo.LookupTree(oid); err != nil {
				return err
			} else if tree != nil {
				if showType {
					fmt.Fprintln(cmd.OutOrStdout(), gitkit.ObjectTree)
					return nil
				}
				_, err := tree.WalkPreorder(func(root string, entry *gitkit.TreeEntry) gitkit.WalkMode {
					printTreeEntry(cmd, root, entry)
					return gitkit.WalkSkip
				})
				return err
			}

			return fmt.Errorf("object %s not found", oid)
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "Show the object's type instead of its content")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "Show a blob's size instead of its content")

	return cmd
}
