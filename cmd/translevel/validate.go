package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/reglet-dev/translevel/internal/application/errors"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dataset.yaml>",
		Short: "Validate a dataset without computing anything",
		Args:  cobra.ExactArgs(1),
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			ds, err := cc.Container.DatasetLoader().Load(args[0])
			if err != nil {
				var verr *apperrors.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(w, "✗ %s is invalid\n", args[0])
				}
				return err
			}

			states := 0
			for _, d := range ds.Defects {
				states += len(d.ChargeStates)
			}
			fmt.Fprintf(w, "✓ %s (v%s) is valid: %d defects, %d charge states, %d limits\n",
				ds.Name, ds.Version, len(ds.Defects), states, len(ds.Limits()))
			return nil
		}),
	}
}

func init() {
	rootCmd.AddCommand(newValidateCmd())
}
