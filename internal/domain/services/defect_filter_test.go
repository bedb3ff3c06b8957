package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/translevel/internal/domain/entities"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

func newDefect(t *testing.T, name, site string, stoich map[string]int, charges ...int) *entities.Defect {
	t.Helper()
	host := entities.NewHost(0, 0, 1, values.NewEnergyMap("elemental energies", map[string]float64{"Ge": 0, "O": 0, "P": 0}), 0)
	d := entities.NewDefect(name, values.NewStoichiometry(stoich), host, site)
	for _, q := range charges {
		_, err := d.AddChargeState(q, 0)
		require.NoError(t, err)
	}
	return d
}

func Test_DefectFilter_NoFilters(t *testing.T) {
	include, reason, err := NewDefectFilter().ShouldInclude(newDefect(t, "V_O1", "O", nil, 0))
	require.NoError(t, err)
	assert.True(t, include, "no filters should allow all defects")
	assert.Empty(t, reason)
}

func Test_DefectFilter_Nil(t *testing.T) {
	var f *DefectFilter
	include, _, err := f.ShouldInclude(newDefect(t, "V_O1", "O", nil, 0))
	require.NoError(t, err)
	assert.True(t, include)
}

func Test_DefectFilter_ExclusiveMode(t *testing.T) {
	filter := NewDefectFilter().
		WithNames([]string{"V_O1", "V_O2"}).
		WithExcludedNames([]string{"V_O1"})

	tests := []struct {
		name     string
		expected bool
	}{
		{"V_O1", true},
		{"V_O2", true},
		{"V_O3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			include, _, _ := filter.ShouldInclude(newDefect(t, tt.name, "O", nil, 0))
			assert.Equal(t, tt.expected, include)
		})
	}
}

func Test_DefectFilter_ExcludeNames(t *testing.T) {
	filter := NewDefectFilter().WithExcludedNames([]string{"PGe1"})

	include, reason, _ := filter.ShouldInclude(newDefect(t, "PGe1", "Ge1", nil, 0))
	assert.False(t, include)
	assert.Equal(t, "excluded by --exclude-defect", reason)

	include, _, _ = filter.ShouldInclude(newDefect(t, "PGe2", "Ge2", nil, 0))
	assert.True(t, include)
}

func Test_DefectFilter_Sites(t *testing.T) {
	filter := NewDefectFilter().WithSites([]string{"Ge1", "Ge2"})

	tests := []struct {
		site     string
		expected bool
	}{
		{"Ge1", true},
		{"Ge2", true},
		{"O", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			include, _, _ := filter.ShouldInclude(newDefect(t, "d", tt.site, nil, 0))
			assert.Equal(t, tt.expected, include)
		})
	}
}

func Test_DefectFilter_Expression(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		defect   func(t *testing.T) *entities.Defect
		expected bool
	}{
		{
			name:     "element membership",
			expr:     `"P" in elements`,
			defect:   func(t *testing.T) *entities.Defect { return newDefect(t, "PGe1", "Ge1", map[string]int{"P": 1, "Ge": -1}, 0, 1) },
			expected: true,
		},
		{
			name:     "element missing",
			expr:     `"P" in elements`,
			defect:   func(t *testing.T) *entities.Defect { return newDefect(t, "V_O1", "O", map[string]int{"O": -1}, 0) },
			expected: false,
		},
		{
			name:     "charge count",
			expr:     `len(charges) >= 3`,
			defect:   func(t *testing.T) *entities.Defect { return newDefect(t, "V_O1", "O", map[string]int{"O": -1}, 0, 1, 2) },
			expected: true,
		},
		{
			name:     "name prefix",
			expr:     `name startsWith "V_"`,
			defect:   func(t *testing.T) *entities.Defect { return newDefect(t, "PGe1", "Ge1", nil, 0) },
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := CompileFilter(tt.expr)
			require.NoError(t, err)

			include, reason, err := NewDefectFilter().WithFilterExpression(program).ShouldInclude(tt.defect(t))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, include)
			if !tt.expected {
				assert.Equal(t, "excluded by --filter expression", reason)
			}
		})
	}
}

func Test_DefectFilter_ExpressionRuntimeError(t *testing.T) {
	program, err := CompileFilter(`charges[5] > 0`)
	require.NoError(t, err)

	filter := NewDefectFilter().WithFilterExpression(program)

	include, reason, err := filter.ShouldInclude(newDefect(t, "V_O1", "O", map[string]int{"O": -1}, 0))
	require.Error(t, err)
	assert.False(t, include)
	assert.Empty(t, reason)
	assert.Contains(t, err.Error(), "V_O1")

	include, _, err = filter.ShouldInclude(newDefect(t, "V_P", "P", map[string]int{"P": -1}, 0, -1, -2, -3, -4, -5))
	require.NoError(t, err)
	assert.True(t, include)
}

func Test_CompileFilter_Invalid(t *testing.T) {
	_, err := CompileFilter("name +")
	assert.Error(t, err)

	_, err = CompileFilter("name")
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = CompileFilter("severity == 'high'")
	assert.Error(t, err, "unknown variables are rejected")
}
