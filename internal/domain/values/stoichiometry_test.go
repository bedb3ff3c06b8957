package values

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Stoichiometry_SubtractChemicalTerm(t *testing.T) {
	ref := NewEnergyMap("elemental energies", map[string]float64{
		"Ge": -4.48604,
		"P":  -5.18405,
		"O":  -4.54934575,
	})
	mu := NewEnergyMap("chemical potentials", map[string]float64{
		"Ge": 0.0,
		"P":  -2.0888,
		"O":  -2.4332,
	})

	tests := []struct {
		name   string
		counts map[string]int
		want   float64
	}{
		{"oxygen vacancy", map[string]int{"O": -1}, 10 + 4.54934575 + 2.4332},
		{"oxygen interstitial", map[string]int{"O": 1}, 10 - 4.54934575 - 2.4332},
		{"antisite", map[string]int{"P": 1, "Ge": -1}, 10 - (-5.18405 - 2.0888) - 4.48604},
		{"empty", map[string]int{}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStoichiometry(tt.counts).SubtractChemicalTerm(10, ref, mu)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func Test_Stoichiometry_SubtractChemicalTerm_DeclarationOrder(t *testing.T) {
	ref := NewEnergyMap("elemental energies", map[string]float64{"P": -5.18405, "O": -4.54934575})
	mu := NewEnergyMap("chemical potentials", map[string]float64{"P": -2.0888, "O": -2.4332})
	counts := map[string]int{"P": -1, "O": -4}
	start := -2846.845 + 2884.79313425

	pFirst, err := NewOrderedStoichiometry(counts, []string{"P", "O"}).SubtractChemicalTerm(start, ref, mu)
	require.NoError(t, err)

	pRef, pMu, oRef, oMu := -5.18405, -2.0888, -4.54934575, -2.4332
	p, o := pRef+pMu, oRef+oMu
	want := start
	want -= float64(p * -1)
	want -= float64(o * -4)
	assert.Equal(t, want, pFirst)
}

func Test_Stoichiometry_SubtractChemicalTerm_MissingKey(t *testing.T) {
	ref := NewEnergyMap("elemental energies", map[string]float64{"O": -4.5})
	s := NewStoichiometry(map[string]int{"O": -1})

	_, err := s.SubtractChemicalTerm(0, ref, NewEnergyMap("chemical potentials", map[string]float64{"Ge": 0}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	assert.Contains(t, err.Error(), "chemical potentials")

	_, err = NewStoichiometry(map[string]int{"P": 1}).SubtractChemicalTerm(0, ref, NewEnergyMap("", map[string]float64{"P": 0}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elemental energies")
}

func Test_Stoichiometry_String(t *testing.T) {
	s := NewStoichiometry(map[string]int{"P": 1, "Ge": -1})
	assert.Equal(t, "Ge-1 P+1", s.String())
	assert.Equal(t, []string{"Ge", "P"}, s.Elements())
	assert.Equal(t, -1, s.Count("Ge"))
	assert.Equal(t, 0, s.Count("O"))
}

func Test_NewOrderedStoichiometry(t *testing.T) {
	counts := map[string]int{"P": 1, "Ge": -1, "O": 2}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"full order", []string{"P", "Ge", "O"}, []string{"P", "Ge", "O"}},
		{"partial order appends the rest sorted", []string{"P"}, []string{"P", "Ge", "O"}},
		{"unknown and repeated labels ignored", []string{"Si", "O", "O", "P"}, []string{"O", "P", "Ge"}},
		{"no order sorts", nil, []string{"Ge", "O", "P"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOrderedStoichiometry(counts, tt.order)
			assert.Equal(t, tt.want, s.Elements())
			assert.Equal(t, counts, s.ToMap())
		})
	}

	assert.Equal(t, "P+1 Ge-1 O+2", NewOrderedStoichiometry(counts, []string{"P", "Ge"}).String())
}
