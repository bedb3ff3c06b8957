package output

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/entities"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

// ProfileMatrix returns the profile of d as a 2×N matrix: row 0 holds the
// Fermi energies and row 1 the formation energies of the breakpoints.
func ProfileMatrix(d *entities.Defect, deltaMu values.EnergyMap, rng Range) (*mat.Dense, error) {
	efMin, efMax := rng.Resolve(d.Host())

	points, err := d.TLProfile(deltaMu, efMin, efMax)
	if err != nil {
		return nil, err
	}
	return PointsMatrix(points), nil
}

// PointsMatrix lays out points as a 2×N matrix.
func PointsMatrix(points []entities.Point) *mat.Dense {
	m := mat.NewDense(2, len(points), nil)
	for j, p := range points {
		m.Set(0, j, p.FermiEnergy)
		m.Set(1, j, p.FormationEnergy)
	}
	return m
}

// MatrixFormatter writes every profile as a "# <name>" line followed by the
// two matrix rows.
type MatrixFormatter struct {
	writer io.Writer
}

// NewMatrixFormatter creates a new matrix formatter.
func NewMatrixFormatter(w io.Writer) *MatrixFormatter {
	return &MatrixFormatter{writer: w}
}

// Format writes the diagram result as two-row matrices.
func (f *MatrixFormatter) Format(result *diagram.Result) error {
	for _, p := range result.Profiles {
		if len(p.Points) == 0 {
			continue
		}
		m := PointsMatrix(p.Points)

		if _, err := fmt.Fprintf(f.writer, "# %s\n", p.Name); err != nil {
			return err
		}
		rows, _ := m.Dims()
		for i := 0; i < rows; i++ {
			row := m.RawRowView(i)
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = FormatFloat(v)
			}
			if _, err := fmt.Fprintln(f.writer, strings.Join(cells, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}
