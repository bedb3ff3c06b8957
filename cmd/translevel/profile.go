package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/translevel/internal/application/ports"
)

func newProfileCmd() *cobra.Command {
	opts := &DiagramOptions{}
	var format string

	cmd := &cobra.Command{
		Use:   "profile <dataset.yaml>",
		Short: "Compute transition-level profiles",
		Long: `Load a dataset, select a chemical-potential limit and write the lower
envelope of every selected defect's formation energies.

Formats:
  xmgrace   "# <defect>" followed by "<E_F> <E_f>" lines per breakpoint
  matrix    per defect the Fermi-energy row and the formation-energy row
  table     segments and transition levels for reading
  json      full result
  yaml      full result

Filtering:
  --defect V_O1,V_O2            Only these defects (exclusive)
  --exclude-defect PGe1         Exclude defects by name
  --site Ge1                    Only defects on these sites
  --filter '"P" in elements'    Expression over name, site, elements, charges`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = cc.Container.Settings().Format
			}
			return runProfile(cc, cmd, opts, format, args[0])
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "xmgrace", "Output format: xmgrace, matrix, table, json, yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(newProfileCmd())
}

// runProfile implements the core logic for the profile command.
func runProfile(cc *CommandContext, cmd *cobra.Command, opts *DiagramOptions, format, datasetPath string) error {
	if err := opts.ValidateFlags(); err != nil {
		return err
	}

	settings := cc.Container.Settings()
	fopts := ports.FormatterOptions{Indent: settings.Indent, NoColor: settings.NoColor || opts.OutFile != ""}

	// Fail on an unknown format before any work is done.
	if _, err := cc.Container.FormatterFactory().Create(format, nil, fopts); err != nil {
		return err
	}

	cc.Logger.Info("loading dataset", "path", datasetPath)
	ds, err := cc.Container.DatasetLoader().Load(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	cc.Logger.Info("dataset loaded", "name", ds.Name, "version", ds.Version, "defects", len(ds.Defects))

	limit, err := opts.ResolveLimit(ds, settings.Limit)
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

	f, err := cc.Container.FormatterFactory().Create(format, w, fopts)
	if err != nil {
		_ = closeOutput()
		return err
	}
	if err := f.Format(result); err != nil {
		_ = closeOutput()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if opts.OutFile != "" {
		cc.Logger.Info("results written", "file", opts.OutFile, "format", format)
	}
	return nil
}
