package cmd

import (
	"github.com/spf13/cobra"

	"github.com/esti34/capsule/internal/authflow"
)

func newRegisterCmd(a *cli) *cobra.Command {
	var f authflow.Fields
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Missing details are prompted for; the password is
prompted for twice. Registering does not sign you in.

Example:
  capsule-cli register --email dana@example.com --first-name Dana --last-name Levi --national-id 123456789`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, p, err := a.controller()
			if err != nil {
				return err
			}

			prompts := []struct {
				value *string
				label string
			}{
				{&f.FirstName, "First name"},
				{&f.LastName, "Last name"},
				{&f.Email, "Email address"},
				{&f.NationalID, "National ID"},
			}
			for _, pr := range prompts {
				if *pr.value, err = a.valueOrPrompt(cmd, *pr.value, p.Sprintf(pr.label)); err != nil {
					return err
				}
			}
			if f.Password, err = a.promptSecret(cmd, p.Sprintf("Password")); err != nil {
				return err
			}
			if f.ConfirmPassword, err = a.promptSecret(cmd, p.Sprintf("Confirm password")); err != nil {
				return err
			}

			ctrl.SwitchMode(authflow.ModeRegister)
			ctrl.SetFields(f)
			err = ctrl.SubmitRegister(cmd.Context())
			return report(cmd, p, ctrl.State(), err)
		},
	}
	cmd.Flags().StringVar(&f.Email, "email", "", "account email")
	cmd.Flags().StringVar(&f.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.NationalID, "national-id", "", "9-digit national ID")
	return cmd
}
