package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckoutHeadCmd creates the checkout-head command
func newCheckoutHeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout-head",
		Short: "Reset the working tree and index to HEAD's tree",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			done, err := repo.CheckoutHead()
			if err != nil {
				return fmt.Errorf("failed to checkout HEAD: %w", err)
			}

			splog := newSplog()
			defer splog.Close()
			if !done {
				splog.Warn("HEAD is unborn; nothing to check out")
				return nil
			}
			splog.Info("Working tree reset to HEAD")
			return nil
		},
	}

	return cmd
}
