// Package entities contains domain entities for the translevel domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import "github.com/reglet-dev/translevel/internal/domain/values"

// Host is the defect-free reference system. It is immutable after NewHost
// and shared by pointer between every Defect and ChargeState built on it.
type Host struct {
	energy            float64
	vbm               float64
	cbm               float64
	fundamentalGap    float64
	elementalEnergies values.EnergyMap
	correctionScaling float64
}

// NewHost creates a Host. The fundamental gap is fixed here as cbm - vbm;
// cbm < vbm is accepted and yields a negative gap.
func NewHost(energy, vbm, cbm float64, elementalEnergies values.EnergyMap, correctionScaling float64) *Host {
	return &Host{
		energy:            energy,
		vbm:               vbm,
		cbm:               cbm,
		fundamentalGap:    cbm - vbm,
		elementalEnergies: elementalEnergies,
		correctionScaling: correctionScaling,
	}
}

// Energy returns the total energy of the pristine cell.
func (h *Host) Energy() float64 { return h.energy }

// VBM returns the valence-band maximum.
func (h *Host) VBM() float64 { return h.vbm }

// CBM returns the conduction-band minimum.
func (h *Host) CBM() float64 { return h.cbm }

// FundamentalGap returns cbm - vbm as computed at construction.
func (h *Host) FundamentalGap() float64 { return h.fundamentalGap }

// ElementalEnergies returns the per-atom reference energy of each element.
func (h *Host) ElementalEnergies() values.EnergyMap { return h.elementalEnergies }

// CorrectionScaling returns the image-charge correction prefactor.
func (h *Host) CorrectionScaling() float64 { return h.correctionScaling }
