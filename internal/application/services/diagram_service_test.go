package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/translevel/internal/application/dto"
	apperrors "github.com/reglet-dev/translevel/internal/application/errors"
	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/entities"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

const tolerance = 1e-6

func germanateDataset() *entities.Dataset {
	return &entities.Dataset{
		Version: "1.0.0",
		Name:    "germanate",
		Host: entities.HostSpec{
			Energy:            -2884.79313425,
			VBM:               0.4657,
			CBM:               4.0154,
			CorrectionScaling: 0.099720981,
			ElementalEnergies: map[string]float64{"Ge": -4.48604, "P": -5.18405, "O": -4.54934575},
		},
		ChemicalPotentials: map[string]map[string]float64{
			"A":      {"Ge": -4.8746, "P": -8.165, "O": 0.0},
			"D":      {"Ge": 0.0, "P": -2.0888, "O": -2.4332},
			"no-oxy": {"Ge": 0.0, "P": 0.0},
		},
		Defects: []entities.DefectSpec{
			{
				Name:          "V_O1",
				Site:          "O",
				Stoichiometry: map[string]int{"O": -1},
				ChargeStates: []entities.ChargeStateSpec{
					{Charge: 0, Energy: -2876.05861202},
					{Charge: 1, Energy: -2877.36415986},
					{Charge: 2, Energy: -2880.33856625},
				},
			},
			{
				Name:          "PGe1",
				Site:          "Ge1",
				Stoichiometry: map[string]int{"P": 1, "Ge": -1},
				ChargeStates: []entities.ChargeStateSpec{
					{Charge: 0, Energy: -2885.223},
					{Charge: 1, Energy: -2889.005},
				},
			},
			{
				Name:          "PGe2",
				Site:          "Ge2",
				Stoichiometry: map[string]int{"P": 1, "Ge": -1},
				ChargeStates: []entities.ChargeStateSpec{
					{Charge: 1, Energy: -2888.9},
					{Charge: 0, Energy: -2885.1},
				},
			},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func ptr(v float64) *float64 { return &v }

func TestDiagramService_Compute(t *testing.T) {
	svc := NewDiagramService(WithLogger(quietLogger()), WithConcurrency(2))

	result, err := svc.Compute(context.Background(), Request{
		Dataset: germanateDataset(),
		Limit:   "A",
		Range:   diagram.FermiRange{Max: ptr(3.0)},
	})
	require.NoError(t, err)

	assert.False(t, result.RunID.IsZero())
	assert.Equal(t, "germanate", result.DatasetName)
	assert.Equal(t, "A", result.Limit)
	assert.Equal(t, 0.0, result.FermiMin)
	assert.Equal(t, 3.0, result.FermiMax)
	assert.InDelta(t, 3.5497, result.FundamentalGap, 1e-12)
	assert.Equal(t, 0.0, result.ChemicalPotentials["O"])

	require.Len(t, result.Profiles, 3)
	for i, name := range []string{"V_O1", "PGe1", "PGe2"} {
		assert.Equal(t, name, result.Profiles[i].Name)
		assert.Equal(t, i, result.Profiles[i].Index)
	}

	vo1 := result.Profiles[0]
	require.Len(t, vo1.Points, 3)
	assert.InDelta(t, 0.0, vo1.Points[0].FermiEnergy, tolerance)
	assert.InDelta(t, 1.23550617, vo1.Points[0].FormationEnergy, tolerance)
	assert.InDelta(t, 1.47483515, vo1.Points[1].FermiEnergy, tolerance)
	assert.InDelta(t, 4.18517648, vo1.Points[1].FormationEnergy, tolerance)
	assert.InDelta(t, 3.0, vo1.Points[2].FermiEnergy, tolerance)
	assert.InDelta(t, 4.18517648, vo1.Points[2].FormationEnergy, tolerance)

	require.Len(t, vo1.Transitions, 1)
	assert.Equal(t, 2, vo1.Transitions[0].From)
	assert.Equal(t, 0, vo1.Transitions[0].To)
	require.Len(t, vo1.Segments, 2)
	assert.Equal(t, map[string]int{"O": -1}, vo1.Stoichiometry)
}

func TestDiagramService_Compute_DefaultRangeIsGap(t *testing.T) {
	svc := NewDiagramService(WithLogger(quietLogger()))

	result, err := svc.Compute(context.Background(), Request{Dataset: germanateDataset(), Limit: "D"})
	require.NoError(t, err)

	for _, p := range result.Profiles {
		last := p.Points[len(p.Points)-1]
		assert.InDelta(t, 3.5497, last.FermiEnergy, 1e-12)
		assert.InDelta(t, 0.0, p.Points[0].FermiEnergy, 1e-12)
	}
}

func TestDiagramService_Compute_Filter(t *testing.T) {
	filter, err := BuildDefectFilter(dto.FilterOptions{FilterExpression: `"P" in elements`, ExcludeNames: []string{"PGe2"}})
	require.NoError(t, err)

	svc := NewDiagramService(WithLogger(quietLogger()))
	result, err := svc.Compute(context.Background(), Request{Dataset: germanateDataset(), Limit: "A", Filter: filter})
	require.NoError(t, err)

	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "PGe1", result.Profiles[0].Name)
	require.Len(t, result.Skipped, 2)
}

func TestDiagramService_Compute_MissingChemicalPotential(t *testing.T) {
	svc := NewDiagramService(WithLogger(quietLogger()), WithConcurrency(1))

	_, err := svc.Compute(context.Background(), Request{Dataset: germanateDataset(), Limit: "no-oxy"})
	require.Error(t, err)

	assert.True(t, errors.Is(err, values.ErrKeyNotFound))

	var missing *values.MissingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "O", missing.Key)

	var compErr *apperrors.ComputationError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "V_O1", compErr.Defect)
}

func TestDiagramService_Compute_Errors(t *testing.T) {
	svc := NewDiagramService(WithLogger(quietLogger()))

	tests := []struct {
		name  string
		req   Request
		check func(t *testing.T, err error)
	}{
		{
			name: "nil dataset",
			req:  Request{Limit: "A"},
			check: func(t *testing.T, err error) {
				var verr *apperrors.ValidationError
				assert.True(t, errors.As(err, &verr))
			},
		},
		{
			name: "unknown limit",
			req:  Request{Dataset: germanateDataset(), Limit: "Z"},
			check: func(t *testing.T, err error) {
				var unknown *entities.UnknownLimitError
				assert.True(t, errors.As(err, &unknown))
			},
		},
		{
			name: "reversed range",
			req:  Request{Dataset: germanateDataset(), Limit: "A", Range: diagram.FermiRange{Min: ptr(2), Max: ptr(1)}},
			check: func(t *testing.T, err error) {
				var verr *apperrors.ValidationError
				assert.True(t, errors.As(err, &verr))
			},
		},
		{
			name: "duplicate charge",
			req: func() Request {
				ds := germanateDataset()
				ds.Defects[0].ChargeStates = append(ds.Defects[0].ChargeStates, entities.ChargeStateSpec{Charge: 0})
				return Request{Dataset: ds, Limit: "A"}
			}(),
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, entities.ErrDuplicateChargeState))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(context.Background(), tt.req)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDiagramService_Compute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewDiagramService(WithLogger(quietLogger()))
	_, err := svc.Compute(ctx, Request{Dataset: germanateDataset(), Limit: "A"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiagramService_Compute_FilterRuntimeError(t *testing.T) {
	filter, err := BuildDefectFilter(dto.FilterOptions{FilterExpression: `charges[2] == 2`})
	require.NoError(t, err)

	svc := NewDiagramService(WithLogger(quietLogger()))
	_, err = svc.Compute(context.Background(), Request{Dataset: germanateDataset(), Limit: "A", Filter: filter})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "filter", verr.Field)
	assert.Contains(t, verr.Message, "PGe1")
}

func TestBuildDefectFilter_InvalidExpression(t *testing.T) {
	_, err := BuildDefectFilter(dto.FilterOptions{FilterExpression: "name +"})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "filter", verr.Field)
}

func TestBuildDefectFilter_EmptyOptions(t *testing.T) {
	filter, err := BuildDefectFilter(dto.FilterOptions{})
	require.NoError(t, err)
	assert.Nil(t, filter)
}
