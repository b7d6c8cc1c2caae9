package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/internal/output"
)

// newLsTreeCmd creates the ls-tree command
func newLsTreeCmd() *cobra.Command {
	var recurse bool

	cmd := &cobra.Command{
		Use:   "ls-tree <revision> [path]",
		Short: "List the contents of a tree object",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			commit, err := resolveCommit(repo, args[0])
			if err != nil {
				return err
			}
			tree, err := commit.Tree()
			if err != nil {
				return err
			}

			if len(args) > 1 {
				entry := tree.EntryByPath(args[1])
				if entry == nil {
					return fmt.Errorf("path %q not found in %s", args[1], args[0])
				}
				if !entry.FileMode().IsTree() {
					printTreeEntry(cmd, "", entry)
					return nil
				}
				tree, err = repo.LookupTree(entry.ID())
				if err != nil {
					return err
				}
				if tree == nil {
					return fmt.Errorf("tree %s not found", entry.ID())
				}
			}

			_, err = tree.WalkPreorder(func(root string, entry *gitkit.TreeEntry) gitkit.WalkMode {
				if entry.FileMode().IsTree() && !recurse {
					printTreeEntry(cmd, root, entry)
					return gitkit.WalkSkip
				}
				if !entry.FileMode().IsTree() {
					printTreeEntry(cmd, root, entry)
				}
				return gitkit.WalkPass
			})
			return err
		},
	}

	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "Recurse into subtrees, listing blobs only")

	return cmd
}

func printTreeEntry(cmd *cobra.Command, root string, entry *gitkit.TreeEntry) {
	fmt.Fprintf(cmd.OutOrStdout(), "%06o %s %s\t%s\n",
		uint32(entry.FileMode()),
		entry.ObjectType(),
		output.ColorOID(entry.ID().String()),
		root+entry.Name(),
	)
}
