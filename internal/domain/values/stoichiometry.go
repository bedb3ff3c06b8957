package values

import (
	"fmt"
	"sort"
	"strings"
)

// Stoichiometry is the signed change in atom count per element relative to
// the host; removing one oxygen atom is {O: -1}. Immutable.
//
// Elements keep their declaration order, which fixes the order in which
// chemical-potential terms are accumulated.
type Stoichiometry struct {
	counts map[string]int
	order  []string
}

// NewStoichiometry copies counts into a new Stoichiometry with elements in
// sorted order. Zero entries are kept: they contribute nothing to formation
// energies but still require a chemical potential, matching how the counts
// were declared.
func NewStoichiometry(counts map[string]int) Stoichiometry {
	return NewOrderedStoichiometry(counts, nil)
}

// NewOrderedStoichiometry is NewStoichiometry with an explicit element order.
// Elements of order missing from counts are ignored; elements of counts
// missing from order follow in sorted order.
func NewOrderedStoichiometry(counts map[string]int, order []string) Stoichiometry {
	copied := make(map[string]int, len(counts))
	for k, v := range counts {
		copied[k] = v
	}

	ordered := make([]string, 0, len(copied))
	seen := make(map[string]bool, len(copied))
	for _, el := range order {
		if _, ok := copied[el]; ok && !seen[el] {
			ordered = append(ordered, el)
			seen[el] = true
		}
	}
	var rest []string
	for el := range copied {
		if !seen[el] {
			rest = append(rest, el)
		}
	}
	sort.Strings(rest)

	return Stoichiometry{counts: copied, order: append(ordered, rest...)}
}

// Count returns the change for element (0 if absent).
func (s Stoichiometry) Count(element string) int {
	return s.counts[element]
}

// Elements returns the element labels in declaration order.
func (s Stoichiometry) Elements() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of elements.
func (s Stoichiometry) Len() int {
	return len(s.counts)
}

// ToMap returns a copy of the counts.
func (s Stoichiometry) ToMap() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// SubtractChemicalTerm returns energy - Σ_i n_i·(ref_i + Δμ_i), subtracting
// one element at a time in declaration order. Fails on the first element
// missing from either mapping.
func (s Stoichiometry) SubtractChemicalTerm(energy float64, reference, deltaMu EnergyMap) (float64, error) {
	for _, el := range s.order {
		ref, err := reference.Lookup(el)
		if err != nil {
			return 0, err
		}
		mu, err := deltaMu.Lookup(el)
		if err != nil {
			return 0, err
		}
		// float64() rounds the product so it is never fused into the subtraction.
		energy -= float64((ref + mu) * float64(s.Count(el)))
	}
	return energy, nil
}

// String renders the stoichiometry in declaration order, e.g. "P+1 Ge-1".
func (s Stoichiometry) String() string {
	parts := make([]string, 0, len(s.order))
	for _, el := range s.order {
		parts = append(parts, fmt.Sprintf("%s%+d", el, s.Count(el)))
	}
	return strings.Join(parts, " ")
}
