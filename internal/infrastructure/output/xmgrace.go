package output

import (
	"fmt"
	"io"

	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/entities"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

// Range is the Fermi-energy window rendered by the adapters. Unset bounds
// resolve against the defect's host.
type Range = diagram.FermiRange

// WriteXmgrace writes the profile of d as an xmgrace text block: a
// "# <name>" header followed by one "<ef> <energy>" line per breakpoint.
func WriteXmgrace(w io.Writer, d *entities.Defect, deltaMu values.EnergyMap, rng Range) error {
	efMin, efMax := rng.Resolve(d.Host())

	points, err := d.TLProfile(deltaMu, efMin, efMax)
	if err != nil {
		return err
	}
	return writeXmgraceBlock(w, d.Name(), points)
}

func writeXmgraceBlock(w io.Writer, name string, points []entities.Point) error {
	if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%s %s\n", FormatFloat(p.FermiEnergy), FormatFloat(p.FormationEnergy)); err != nil {
			return err
		}
	}
	return nil
}

// XmgraceFormatter writes every profile of a result as an xmgrace block,
// each block followed by a blank line.
type XmgraceFormatter struct {
	writer io.Writer
}

// NewXmgraceFormatter creates a new xmgrace formatter.
func NewXmgraceFormatter(w io.Writer) *XmgraceFormatter {
	return &XmgraceFormatter{writer: w}
}

// Format writes the diagram result as xmgrace blocks.
func (f *XmgraceFormatter) Format(result *diagram.Result) error {
	for _, p := range result.Profiles {
		if err := writeXmgraceBlock(f.writer, p.Name, p.Points); err != nil {
			return err
		}
		if _, err := io.WriteString(f.writer, "\n"); err != nil {
			return err
		}
	}
	return nil
}
