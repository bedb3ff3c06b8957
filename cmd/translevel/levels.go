package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/translevel/internal/infrastructure/output"
)

func newLevelsCmd() *cobra.Command {
	opts := &DiagramOptions{}

	cmd := &cobra.Command{
		Use:   "levels <dataset.yaml>",
		Short: "List the transition levels of each defect",
		Long: `Print the transition levels that lie on each defect's lower envelope
inside the Fermi range, with the formation energy at each level.`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			return runLevels(cc, cmd, opts, args[0])
		}),
	}

	opts.RegisterFlags(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newLevelsCmd())
}

func runLevels(cc *CommandContext, cmd *cobra.Command, opts *DiagramOptions, datasetPath string) error {
	if err := opts.ValidateFlags(); err != nil {
		return err
	}

	ds, err := cc.Container.DatasetLoader().Load(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	limit, err := opts.ResolveLimit(ds, cc.Container.Settings().Limit)
	if err != nil {
		return err
	}

	req, err := opts.Request(ds, limit)
	if err != nil {
		return err
	}

	result, err := cc.Container.DiagramService(opts.Concurrency).Compute(cc.Context, req)
	if err != nil {
		return err
	}

	w, closeOutput, err := opts.OpenOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	table := output.NewTableFormatter(w)
	table.LevelsOnly = true
	table.EnableColor = !cc.Container.Settings().NoColor && opts.OutFile == ""

	if err := table.Format(result); err != nil {
		_ = closeOutput()
		return err
	}
	return closeOutput()
}
