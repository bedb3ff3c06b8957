package values

import (
	"errors"
	"fmt"
	"sort"
)

// ErrKeyNotFound is matched by every MissingKeyError.
var ErrKeyNotFound = errors.New("key not found")

// MissingKeyError reports a lookup of an element that a mapping does not
// contain. Lookups never fall back to a default value.
type MissingKeyError struct {
	Mapping string // e.g. "chemical potentials"
	Key     string
}

func (e *MissingKeyError) Error() string {
	if e.Mapping == "" {
		return fmt.Sprintf("key not found: %q", e.Key)
	}
	return fmt.Sprintf("%s: key not found: %q", e.Mapping, e.Key)
}

// Is lets errors.Is(err, ErrKeyNotFound) match.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// EnergyMap is an immutable element -> energy mapping, used for elemental
// reference energies and for chemical-potential offsets.
type EnergyMap struct {
	name    string
	entries map[string]float64
}

// NewEnergyMap copies entries into a new EnergyMap. The name appears in
// lookup errors.
func NewEnergyMap(name string, entries map[string]float64) EnergyMap {
	copied := make(map[string]float64, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return EnergyMap{name: name, entries: copied}
}

// Name returns the label used in lookup errors.
func (m EnergyMap) Name() string {
	return m.name
}

// Lookup returns the energy for element, or a *MissingKeyError.
func (m EnergyMap) Lookup(element string) (float64, error) {
	v, ok := m.entries[element]
	if !ok {
		return 0, &MissingKeyError{Mapping: m.name, Key: element}
	}
	return v, nil
}

// Has reports whether element is present.
func (m EnergyMap) Has(element string) bool {
	_, ok := m.entries[element]
	return ok
}

// Len returns the number of entries.
func (m EnergyMap) Len() int {
	return len(m.entries)
}

// Elements returns the element labels in sorted order.
func (m EnergyMap) Elements() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToMap returns a copy of the entries.
func (m EnergyMap) ToMap() map[string]float64 {
	out := make(map[string]float64, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
