package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/translevel/internal/application/dto"
	"github.com/reglet-dev/translevel/internal/application/services"
	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/entities"
)

// DiagramOptions contains flags shared by the commands that compute diagrams.
type DiagramOptions struct {
	Limit       string
	OutFile     string
	Filters     dto.FilterOptions
	EFMin       float64
	EFMax       float64
	Concurrency int
	Interactive bool

	cmd *cobra.Command
}

// RegisterFlags adds the diagram flags to a cobra command.
func (opts *DiagramOptions) RegisterFlags(cmd *cobra.Command) {
	opts.cmd = cmd

	cmd.Flags().StringVarP(&opts.Limit, "limit", "l", "", "Chemical-potential limit (default from settings)")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Float64Var(&opts.EFMin, "ef-min", 0, "Lower Fermi energy in eV above the VBM (default 0)")
	cmd.Flags().Float64Var(&opts.EFMax, "ef-max", 0, "Upper Fermi energy in eV above the VBM (default: band gap)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Defects computed in parallel (default from settings)")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Choose the limit interactively")

	// Filtering flags
	cmd.Flags().StringSliceVar(&opts.Filters.Names, "defect", nil, "Only these defects (exclusive, comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Filters.ExcludeNames, "exclude-defect", nil, "Exclude these defects (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Filters.Sites, "site", nil, "Only defects on these sites (comma-separated)")
	cmd.Flags().StringVar(&opts.Filters.FilterExpression, "filter", "", "Advanced filter expression (e.g. '\"P\" in elements')")
}

// ValidateFlags validates the diagram options.
func (opts *DiagramOptions) ValidateFlags() error {
	if opts.Concurrency < 0 {
		return fmt.Errorf("--concurrency must not be negative")
	}
	rng := opts.Range()
	if err := rng.Validate(); err != nil {
		return err
	}
	return nil
}

// Range returns the Fermi window; bounds not given on the command line stay
// unset so they resolve against the host.
func (opts *DiagramOptions) Range() diagram.FermiRange {
	var rng diagram.FermiRange
	if opts.cmd == nil {
		return rng
	}
	if opts.cmd.Flags().Changed("ef-min") {
		v := opts.EFMin
		rng.Min = &v
	}
	if opts.cmd.Flags().Changed("ef-max") {
		v := opts.EFMax
		rng.Max = &v
	}
	return rng
}

// ResolveLimit picks the chemical-potential limit: the flag, then the
// interactive picker, then the configured default, then the only limit of
// the dataset.
func (opts *DiagramOptions) ResolveLimit(ds *entities.Dataset, configured string) (string, error) {
	limits := ds.Limits()

	switch {
	case opts.Limit != "":
		return opts.Limit, nil
	case opts.Interactive:
		return pickLimit(limits)
	case configured != "":
		return configured, nil
	case len(limits) == 1:
		return limits[0], nil
	case len(limits) == 0:
		return "", fmt.Errorf("dataset %s defines no chemical-potential limits", ds.Name)
	default:
		return "", fmt.Errorf("--limit is required (available: %s)", strings.Join(limits, ", "))
	}
}

// Request builds the diagram request for ds.
func (opts *DiagramOptions) Request(ds *entities.Dataset, limit string) (services.Request, error) {
	filter, err := services.BuildDefectFilter(opts.Filters)
	if err != nil {
		return services.Request{}, err
	}
	return services.Request{
		Dataset: ds,
		Limit:   limit,
		Filter:  filter,
		Range:   opts.Range(),
	}, nil
}

// OpenOutput returns the destination writer and a close function.
func (opts *DiagramOptions) OpenOutput(stdout io.Writer) (io.Writer, func() error, error) {
	if opts.OutFile == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(opts.OutFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func pickLimit(limits []string) (string, error) {
	if len(limits) == 0 {
		return "", fmt.Errorf("dataset defines no chemical-potential limits")
	}

	var limit string
	err := huh.NewSelect[string]().
		Title("Select chemical-potential limit").
		Options(huh.NewOptions(limits...)...).
		Value(&limit).
		Run()
	if err != nil {
		return "", err
	}
	return limit, nil
}
