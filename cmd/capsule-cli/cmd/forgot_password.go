package cmd

import (
	"github.com/spf13/cobra"

	"github.com/esti34/capsule/internal/authflow"
)

func newForgotPasswordCmd(a *cli) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request password reset instructions by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, p, err := a.controller()
			if err != nil {
				return err
			}
			email, err := a.valueOrPrompt(cmd, email, p.Sprintf("Email address"))
			if err != nil {
				return err
			}

			ctrl.SwitchMode(authflow.ModeForgotPassword)
			ctrl.SetFields(authflow.Fields{Email: email})
			err = ctrl.SubmitForgotPassword(cmd.Context())
			return report(cmd, p, ctrl.State(), err)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	return cmd
}
