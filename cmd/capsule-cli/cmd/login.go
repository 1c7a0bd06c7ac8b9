package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esti34/capsule/internal/apiclient"
	"github.com/esti34/capsule/internal/authflow"
)

func newLoginCmd(a *cli) *cobra.Command {
	var (
		email    string
		remember bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Long: `Sign in with email and password. The password is always prompted for.

Examples:
  capsule-cli login --email dana@example.com
  capsule-cli login --email dana@example.com --remember`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, p, err := a.controller(authflow.WithLoginSuccess(func(resp *apiclient.AuthResponse) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s (id %d)\n", resp.User.Email, resp.User.ID)
			}))
			if err != nil {
				return err
			}

			email, err := a.valueOrPrompt(cmd, email, p.Sprintf("Email address"))
			if err != nil {
				return err
			}
			password, err := a.promptSecret(cmd, p.Sprintf("Password"))
			if err != nil {
				return err
			}

			ctrl.SetFields(authflow.Fields{Email: email, Password: password, Remember: remember})
			err = ctrl.SubmitLogin(cmd.Context())
			return report(cmd, p, ctrl.State(), err)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the token across reboots")
	return cmd
}
