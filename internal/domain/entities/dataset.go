package entities

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/reglet-dev/translevel/internal/domain/values"
)

// SupportedDatasetVersions is the semver constraint a dataset's version must
// satisfy.
const SupportedDatasetVersions = "^1.0"

// Dataset is the declarative description of one host, its named
// chemical-potential limits and its defects. It is the aggregate root that
// Build turns into domain objects.
//
// Invariants Enforced:
// - version is valid semver within SupportedDatasetVersions
// - defect names are non-empty and unique
// - every defect has at least one charge state, with unique charges
// - stoichiometry elements have an elemental reference energy
type Dataset struct {
	Version            string                        `yaml:"version" json:"version"`
	Name               string                        `yaml:"name" json:"name"`
	Description        string                        `yaml:"description,omitempty" json:"description,omitempty"`
	Host               HostSpec                      `yaml:"host" json:"host"`
	ChemicalPotentials map[string]map[string]float64 `yaml:"chemical_potentials,omitempty" json:"chemical_potentials,omitempty"`
	Defects            []DefectSpec                  `yaml:"defects" json:"defects"`
}

// HostSpec describes the pristine host.
type HostSpec struct {
	Energy            float64            `yaml:"energy" json:"energy"`
	VBM               float64            `yaml:"vbm" json:"vbm"`
	CBM               float64            `yaml:"cbm" json:"cbm"`
	CorrectionScaling float64            `yaml:"correction_scaling" json:"correction_scaling"`
	ElementalEnergies map[string]float64 `yaml:"elemental_energies" json:"elemental_energies"`
}

// DefectSpec describes one defect and its charge states.
type DefectSpec struct {
	Name          string            `yaml:"name" json:"name"`
	Site          string            `yaml:"site,omitempty" json:"site,omitempty"`
	Stoichiometry map[string]int    `yaml:"stoichiometry" json:"stoichiometry"`
	ChargeStates  []ChargeStateSpec `yaml:"charge_states" json:"charge_states"`

	// ElementOrder is the order in which the stoichiometry was written.
	// Loaders fill it; Build falls back to sorted order for elements it omits.
	ElementOrder []string `yaml:"-" json:"-"`
}

// ChargeStateSpec is one charge state's total energy.
type ChargeStateSpec struct {
	Charge int     `yaml:"charge" json:"charge"`
	Energy float64 `yaml:"energy" json:"energy"`
}

// Validate checks the dataset invariants and reports every violation found.
func (d *Dataset) Validate() error {
	var problems []string

	if err := validateVersion(d.Version); err != nil {
		problems = append(problems, err.Error())
	}

	for el := range d.Host.ElementalEnergies {
		if _, err := values.NewElement(el); err != nil {
			problems = append(problems, fmt.Sprintf("host: %s", err.Error()))
		}
	}

	if len(d.Defects) == 0 {
		problems = append(problems, "at least one defect is required")
	}

	elemental := values.NewEnergyMap("elemental energies", d.Host.ElementalEnergies)
	names := make(map[string]bool)
	for i, def := range d.Defects {
		if err := def.validate(elemental); err != nil {
			problems = append(problems, fmt.Sprintf("defect %d (%s): %s", i, def.Name, err.Error()))
		}
		if def.Name != "" && names[def.Name] {
			problems = append(problems, fmt.Sprintf("duplicate defect name: %s", def.Name))
		}
		names[def.Name] = true
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("dataset validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func (s DefectSpec) validate(elemental values.EnergyMap) error {
	var problems []string

	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "name is required")
	}

	for _, el := range sortedKeys(s.Stoichiometry) {
		if _, err := values.NewElement(el); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if !elemental.Has(el) {
			problems = append(problems, fmt.Sprintf("element %s has no elemental energy in host", el))
		}
	}

	if len(s.ChargeStates) == 0 {
		problems = append(problems, "at least one charge state is required")
	}
	seen := make(map[int]bool)
	for _, cs := range s.ChargeStates {
		if seen[cs.Charge] {
			problems = append(problems, fmt.Sprintf("duplicate charge state %+d", cs.Charge))
		}
		seen[cs.Charge] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func validateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("dataset version is required")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("dataset version %q is not valid semver: %v", version, err)
	}
	c, err := semver.NewConstraint(SupportedDatasetVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("dataset version %s is not supported (want %s)", version, SupportedDatasetVersions)
	}
	return nil
}

// Build creates the shared Host and one Defect per DefectSpec, in dataset
// order.
func (d *Dataset) Build() (*Host, []*Defect, error) {
	host := NewHost(
		d.Host.Energy,
		d.Host.VBM,
		d.Host.CBM,
		values.NewEnergyMap("elemental energies", d.Host.ElementalEnergies),
		d.Host.CorrectionScaling,
	)

	defects := make([]*Defect, 0, len(d.Defects))
	for _, spec := range d.Defects {
		def := NewDefect(spec.Name, values.NewOrderedStoichiometry(spec.Stoichiometry, spec.ElementOrder), host, spec.Site)
		for _, cs := range spec.ChargeStates {
			if _, err := def.AddChargeState(cs.Charge, cs.Energy); err != nil {
				return nil, nil, err
			}
		}
		defects = append(defects, def)
	}
	return host, defects, nil
}

// Limits returns the names of the chemical-potential limits, sorted.
func (d *Dataset) Limits() []string {
	return sortedKeys(d.ChemicalPotentials)
}

// ChemicalPotentialsFor returns the Δμ mapping of the named limit.
func (d *Dataset) ChemicalPotentialsFor(limit string) (values.EnergyMap, error) {
	mu, ok := d.ChemicalPotentials[limit]
	if !ok {
		return values.EnergyMap{}, &UnknownLimitError{Limit: limit, Available: d.Limits()}
	}
	return values.NewEnergyMap(fmt.Sprintf("chemical potentials (limit %s)", limit), mu), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
