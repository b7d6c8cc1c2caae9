package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/internal/output"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		message     string
		authorName  string
		authorEmail string
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged index as a new commit on HEAD",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if message == "" {
				return fmt.Errorf("a commit message is required (-m)")
			}

			repo, err := openRepo()
			if err != nil {
				return err
			}
			sig, err := commitSignature(authorName, authorEmail)
			if err != nil {
				return err
			}

			idx, err := repo.Index()
			if err != nil {
				return err
			}
			tree, err := idx.WriteTree()
			if err != nil {
				return fmt.Errorf("failed to write tree: %w", err)
			}

			var parents []*gitkit.Commit
			head, err := repo.Head()
			if err != nil {
				return err
			}
			if head != nil {
				oid, err := head.Resolve()
				if err != nil {
					return err
				}
				parent, err := repo.LookupCommit(oid)
				if err != nil {
					return err
				}
				if parent != nil {
					parents = append(parents, parent)
				}
			}

			oid, err := repo.CreateCommit("HEAD", sig, sig, "", message, tree, parents...)
			if err != nil {
				return fmt.Errorf("failed to create commit: %w", err)
			}

			splog := newSplog()
			defer splog.Close()
			splog.Info("[%s] %s", output.ColorOID(shortOID(oid)), summaryLine(message))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "The commit message")
	cmd.Flags().StringVar(&authorName, "author-name", "", "Author name (defaults to GIT_AUTHOR_NAME)")
	cmd.Flags().StringVar(&authorEmail, "author-email", "", "Author email (defaults to GIT_AUTHOR_EMAIL)")

	return cmd
}

// commitSignature builds the commit identity from flags, falling back
// to the GIT_AUTHOR_NAME / GIT_AUTHOR_EMAIL environment variables.
func commitSignature(name, email string) (*gitkit.Signature, error) {
	if name == "" {
		name = os.Getenv("GIT_AUTHOR_NAME")
	}
	if email == "" {
		email = os.Getenv("GIT_AUTHOR_EMAIL")
	}
	if name == "" || email == "" {
		return nil, fmt.Errorf("author identity unknown: set --author-name/--author-email or GIT_AUTHOR_NAME/GIT_AUTHOR_EMAIL")
	}
	return gitkit.NewSignature(name, email, time.Now()), nil
}
