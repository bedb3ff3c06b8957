package entities

import "github.com/reglet-dev/translevel/internal/domain/values"

// ChargeState is one charge state of a Defect. Instances are created only by
// Defect.AddChargeState and are immutable.
type ChargeState struct {
	charge        int
	energy        float64
	host          *Host
	stoichiometry values.Stoichiometry
}

// Charge returns the number of electrons removed relative to neutral.
func (c *ChargeState) Charge() int { return c.charge }

// Energy returns the total energy of the defective cell in this charge state.
func (c *ChargeState) Energy() float64 { return c.energy }

// Host returns the shared host.
func (c *ChargeState) Host() *Host { return c.host }

// Stoichiometry returns the owning defect's stoichiometry.
func (c *ChargeState) Stoichiometry() values.Stoichiometry { return c.stoichiometry }

// Correction returns the image-charge correction scaling * q^2. It is derived
// from the host on every call.
func (c *ChargeState) Correction() float64 {
	q := float64(c.charge)
	return float64(c.host.correctionScaling * q * q)
}

// FormationEnergy returns
//
//	(E_q - E_host) - Σ n_i (E_i^ref + Δμ_i) + q (E_VBM + eFermi) + correction
//
// accumulated left to right, with the chemical-potential terms in the
// stoichiometry's declaration order. eFermi is measured from the host VBM.
// deltaMu must hold every element of the stoichiometry; a missing element
// yields a *values.MissingKeyError.
func (c *ChargeState) FormationEnergy(eFermi float64, deltaMu values.EnergyMap) (float64, error) {
	energy, err := c.stoichiometry.SubtractChemicalTerm(c.energy-c.host.energy, c.host.elementalEnergies, deltaMu)
	if err != nil {
		return 0, err
	}
	return c.addElectronicTerms(energy, eFermi), nil
}

// RelativeFormationEnergy is FormationEnergy without the chemical-potential
// term. Only meaningful for ranking charge states of the same defect.
func (c *ChargeState) RelativeFormationEnergy(eFermi float64) float64 {
	return c.addElectronicTerms(c.energy-c.host.energy, eFermi)
}

func (c *ChargeState) addElectronicTerms(energy, eFermi float64) float64 {
	energy += float64(float64(c.charge) * (c.host.vbm + eFermi))
	energy += c.Correction()
	return energy
}
