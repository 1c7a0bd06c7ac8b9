package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer()
			if err != nil {
				return err
			}
			store, err := a.store()
			if err != nil {
				return err
			}
			if err := store.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Sprintf("You have been logged out."))
			return nil
		},
	}
}
