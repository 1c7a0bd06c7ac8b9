package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/esti34/capsule/internal/session"
)

// errSignedOut makes `status` exit non-zero for scripts.
var errSignedOut = errors.New("not signed in")

func newStatusCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored and what it says",
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
			token, ok := store.Token()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), p.Sprintf("Not signed in"))
				return errSignedOut
			}

			out := cmd.OutOrStdout()
			claims, err := session.Inspect(token)
			if err != nil {
				// Opaque tokens are fine; there is just nothing to show.
				fmt.Fprintln(out, p.Sprintf("Signed in"))
				return nil
			}
			if claims.Subject != "" {
				fmt.Fprintln(out, p.Sprintf("Signed in as %s", claims.Subject))
			}
			if !claims.ExpiresAt.IsZero() {
				fmt.Fprintln(out, p.Sprintf("Session expires at %s", claims.ExpiresAt.Local().Format(time.DateTime)))
				if claims.Expired(time.Now()) {
					fmt.Fprintln(out, p.Sprintf("The stored token has expired"))
				}
			}
			return nil
		},
	}
}
