package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/translevel/internal/infrastructure/output"
)

func newLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits <dataset.yaml>",
		Short: "List the chemical-potential limits of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			ds, err := cc.Container.DatasetLoader().Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			w := cmd.OutOrStdout()
			limits := ds.Limits()
			if len(limits) == 0 {
				fmt.Fprintln(w, "No chemical-potential limits defined.")
				return nil
			}

			for _, limit := range limits {
				mu, err := ds.ChemicalPotentialsFor(limit)
				if err != nil {
					return err
				}
				parts := make([]string, 0, mu.Len())
				for _, el := range mu.Elements() {
					v, _ := mu.Lookup(el)
					parts = append(parts, fmt.Sprintf("%s=%s", el, output.FormatFloat(v)))
				}
				fmt.Fprintf(w, "%s\t%s\n", limit, strings.Join(parts, " "))
			}
			return nil
		}),
	}
}

func init() {
	rootCmd.AddCommand(newLimitsCmd())
}
