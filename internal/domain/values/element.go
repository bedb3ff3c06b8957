package values

import (
	"fmt"
	"regexp"
	"strings"
)

// Element labels are chemical symbols or any other identifier-like label
// (e.g. "Ge", "O", "Ow").
var elementPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Element identifies a chemical species in stoichiometries and energy maps.
// Enforces non-empty, trimmed, identifier-like labels.
type Element struct {
	value string
}

// NewElement creates a new Element with validation
func NewElement(label string) (Element, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Element{}, fmt.Errorf("element label cannot be empty")
	}
	if !elementPattern.MatchString(label) {
		return Element{}, fmt.Errorf("invalid element label %q", label)
	}
	return Element{value: label}, nil
}

// String returns the string representation
func (e Element) String() string {
	return e.value
}
