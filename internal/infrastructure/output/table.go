package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats diagram results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
	// LevelsOnly restricts the output to the transition levels.
	LevelsOnly bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the diagram result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *diagram.Result) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Dataset: %s (v%s)\n", f.colorize(result.DatasetName, colorBold), result.DatasetVersion)
	fmt.Fprintf(f.writer, "Limit: %s  %s\n", f.colorize(result.Limit, colorBold), formatChemicalPotentials(result.ChemicalPotentials))
	fmt.Fprintf(f.writer, "Fermi range: %.4f .. %.4f eV (gap %.4f eV)\n", result.FermiMin, result.FermiMax, result.FundamentalGap)
	fmt.Fprintf(f.writer, "Run: %s  Duration: %s\n", result.RunID, result.Duration.Round(time.Microsecond))
	fmt.Fprintln(f.writer)

	if len(result.Profiles) == 0 {
		fmt.Fprintln(f.writer, "No defects selected.")
	}

	for _, p := range result.Profiles {
		f.formatProfile(p)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintln(f.writer, f.colorize("Skipped:", colorBold))
		for _, s := range result.Skipped {
			fmt.Fprintf(f.writer, "  %s %s\n", f.colorize(s.Name, colorGray), s.Reason)
		}
		fmt.Fprintln(f.writer)
	}

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "%d defects, %d transition levels\n", len(result.Profiles), result.TransitionCount())
	return nil
}

// formatProfile formats a single defect.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatProfile(p diagram.DefectProfile) {
	header := f.colorize(p.Name, colorCyan)
	if p.Site != "" {
		header += fmt.Sprintf(" (site %s)", p.Site)
	}
	fmt.Fprintf(f.writer, "%s  %s\n", header, f.colorize(values.NewStoichiometry(p.Stoichiometry).String(), colorGray))

	if !f.LevelsOnly {
		fmt.Fprintln(f.writer, "  Stable charge states:")
		for _, s := range p.Segments {
			fmt.Fprintf(f.writer, "    %s  %8.4f .. %8.4f eV   E_f %8.4f .. %8.4f eV\n",
				f.colorize(fmt.Sprintf("q=%+d", s.Charge), colorBlue),
				s.Start.FermiEnergy, s.End.FermiEnergy,
				s.Start.FormationEnergy, s.End.FormationEnergy)
		}
	}

	if len(p.Transitions) == 0 {
		fmt.Fprintf(f.writer, "  %s\n", f.colorize("No transition levels in range", colorYellow))
	} else {
		fmt.Fprintln(f.writer, "  Transition levels:")
		for _, tr := range p.Transitions {
			fmt.Fprintf(f.writer, "    ε(%+d/%+d) = %8.4f eV   E_f = %8.4f eV\n",
				tr.From, tr.To, tr.Level.FermiEnergy, tr.Level.FormationEnergy)
		}
	}
	fmt.Fprintln(f.writer)
}

func formatChemicalPotentials(mu map[string]float64) string {
	if len(mu) == 0 {
		return ""
	}
	elements := make([]string, 0, len(mu))
	for el := range mu {
		elements = append(elements, el)
	}
	sort.Strings(elements)

	parts := make([]string, len(elements))
	for i, el := range elements {
		parts[i] = fmt.Sprintf("Δμ_%s=%g", el, mu[el])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
