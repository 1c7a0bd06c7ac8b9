package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/validation"
)

// fieldOrder is the order validation messages are printed in.
var fieldOrder = []validation.Field{
	validation.FieldFirstName,
	validation.FieldLastName,
	validation.FieldEmail,
	validation.FieldNationalID,
	validation.FieldPassword,
	validation.FieldConfirmPassword,
}

// report prints the outcome of a submission. Messages the user should see go
// to stdout on success and stderr otherwise.
func report(cmd *cobra.Command, p *message.Printer, st authflow.State, err error) error {
	switch {
	case err == nil:
		fmt.Fprintln(cmd.OutOrStdout(), st.Success)
		return nil
	case errors.Is(err, authflow.ErrInvalidForm):
		for _, f := range fieldOrder {
			if msg, ok := st.ValidationErrors[f]; ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f, msg)
			}
		}
		return err
	case errors.Is(err, authflow.ErrRequestFailed):
		fmt.Fprintln(cmd.ErrOrStderr(), st.Error)
		return err
	case errors.Is(err, authflow.ErrSubmissionInFlight):
		fmt.Fprintln(cmd.ErrOrStderr(), p.Sprintf(authflow.MsgRequestInFlight))
		return err
	default:
		return err
	}
}
