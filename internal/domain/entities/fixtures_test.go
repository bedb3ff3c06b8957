package entities

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/translevel/internal/domain/values"
)

const tolerance = 1e-6

func germanateHost() *Host {
	return NewHost(
		-2884.79313425,
		0.4657,
		4.0154,
		values.NewEnergyMap("elemental energies", map[string]float64{
			"Ge": -4.48604,
			"P":  -5.18405,
			"O":  -4.54934575,
		}),
		0.099720981,
	)
}

// newVO1 builds the V_O1 oxygen vacancy with charge states 0, +1, +2.
func newVO1(t *testing.T) *Defect {
	t.Helper()
	d := NewDefect("V_O1", values.NewStoichiometry(map[string]int{"O": -1}), germanateHost(), "O")
	for _, cs := range []struct {
		q int
		e float64
	}{
		{0, -2876.05861202},
		{1, -2877.36415986},
		{2, -2880.33856625},
	} {
		_, err := d.AddChargeState(cs.q, cs.e)
		require.NoError(t, err)
	}
	return d
}

func oxygenRich() values.EnergyMap {
	return values.NewEnergyMap("chemical potentials", map[string]float64{"O": 0.0})
}
