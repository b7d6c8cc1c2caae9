package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/internal/output"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	var (
		force      bool
		deleteFlag bool
		rename     string
		remotes    bool
	)

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List, create, rename or delete branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return listBranches(cmd, repo, remotes)
			}
			name := args[0]

			switch {
			case deleteFlag:
				return deleteBranch(repo, name)
			case rename != "":
				return renameBranch(repo, name, rename, force)
			default:
				return createBranch(repo, name, force)
			}
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite the target branch if it exists")
	cmd.Flags().BoolVarP(&deleteFlag, "delete", "d", false, "Delete the named branch")
	cmd.Flags().StringVarP(&rename, "move", "m", "", "Rename the named branch to this name")
	cmd.Flags().BoolVarP(&remotes, "remotes", "r", false, "Include remote-tracking branches in the listing")

	return cmd
}

func listBranches(cmd *cobra.Command, repo *gitkit.Repository, remotes bool) error {
	var current string
	if head, err := repo.Head(); err != nil {
		return err
	} else if head != nil {
		current, _ = head.BranchName()
	}

	_, err := repo.BranchForeach(true, remotes, func(name string, isRemote bool) bool {
		line := output.ColorBranchName(name, !isRemote && name == current)
		if isRemote {
			line = output.ColorDim(name)
		}
		marker := "  "
		if !isRemote && name == current {
			marker = "* "
		}
		fmt.Fprintln(cmd.OutOrStdout(), marker+line)
		return true
	})
	return err
}

func createBranch(repo *gitkit.Repository, name string, force bool) error {
	head, err := repo.Head()
	if err != nil {
		return err
	}
	if head == nil {
		return fmt.Errorf("cannot create branch %q: HEAD is unborn", name)
	}
	oid, err := head.Resolve()
	if err != nil {
		return err
	}
	commit, err := repo.LookupCommit(oid)
	if err != nil {
		return err
	}

	ref, err := repo.BranchCreate(name, commit, force)
	if err != nil {
		return fmt.Errorf("failed to create branch %q: %w", name, err)
	}
	if ref == nil {
		return fmt.Errorf("%q is not a valid branch name", name)
	}
	return nil
}

func renameBranch(repo *gitkit.Repository, name, newName string, force bool) error {
	ref, err := repo.LookupBranch(name, false)
	if err != nil {
		return err
	}
	if ref == nil {
		return fmt.Errorf("branch %q not found", name)
	}
	moved, err := ref.BranchMove(newName, force)
	if err != nil {
		return fmt.Errorf("failed to rename %q: %w", name, err)
	}
	if moved == nil {
		return fmt.Errorf("%q is not a valid branch name", newName)
	}
	return nil
}

func deleteBranch(repo *gitkit.Repository, name string) error {
	ref, err := repo.LookupBranch(name, false)
	if err != nil {
		return err
	}
	if ref == nil {
		return fmt.Errorf("branch %q not found", name)
	}
	if isHead, err := ref.IsHead(); err != nil {
		return err
	} else if isHead {
		return fmt.Errorf("cannot delete the current branch %q", name)
	}
	if err := ref.Delete(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}
