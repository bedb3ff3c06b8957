package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reglet-dev/translevel/internal/domain/entities"
)

// DefectSpecification defines a condition that a defect must meet.
type DefectSpecification interface {
	// IsSatisfiedBy checks if the defect meets the specification.
	// Returns true if satisfied, along with a reason if not (or empty if satisfied).
	// An error means the specification could not be evaluated.
	IsSatisfiedBy(d *entities.Defect) (bool, string, error)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []DefectSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...DefectSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(d *entities.Defect) (bool, string, error) {
	for _, spec := range s.specs {
		satisfied, reason, err := spec.IsSatisfiedBy(d)
		if err != nil || !satisfied {
			return false, reason, err
		}
	}
	return true, "", nil
}

// ExclusiveNamesSpecification includes only the named defects.
type ExclusiveNamesSpecification struct {
	names map[string]bool
}

// NewExclusiveNamesSpecification creates a new ExclusiveNamesSpecification.
func NewExclusiveNamesSpecification(names map[string]bool) *ExclusiveNamesSpecification {
	return &ExclusiveNamesSpecification{names: names}
}

// IsSatisfiedBy checks if the defect name is in the exclusive list.
func (s *ExclusiveNamesSpecification) IsSatisfiedBy(d *entities.Defect) (bool, string, error) {
	if len(s.names) == 0 {
		return true, "", nil // Not active
	}
	if s.names[d.Name()] {
		return true, "", nil
	}
	return false, "excluded by --defect filter", nil
}

// ExcludedNamesSpecification excludes the named defects.
type ExcludedNamesSpecification struct {
	names map[string]bool
}

// NewExcludedNamesSpecification creates a new ExcludedNamesSpecification.
func NewExcludedNamesSpecification(names map[string]bool) *ExcludedNamesSpecification {
	return &ExcludedNamesSpecification{names: names}
}

// IsSatisfiedBy checks if the defect name is NOT in the excluded list.
func (s *ExcludedNamesSpecification) IsSatisfiedBy(d *entities.Defect) (bool, string, error) {
	if s.names[d.Name()] {
		return false, "excluded by --exclude-defect", nil
	}
	return true, "", nil
}

// IncludedSitesSpecification includes only defects on the given sites.
type IncludedSitesSpecification struct {
	sites map[string]bool
}

// NewIncludedSitesSpecification creates a new IncludedSitesSpecification.
func NewIncludedSitesSpecification(sites map[string]bool) *IncludedSitesSpecification {
	return &IncludedSitesSpecification{sites: sites}
}

// IsSatisfiedBy checks if the defect site is in the included list.
func (s *IncludedSitesSpecification) IsSatisfiedBy(d *entities.Defect) (bool, string, error) {
	if len(s.sites) == 0 {
		return true, "", nil
	}
	if !s.sites[d.Site()] {
		return false, fmt.Sprintf("excluded by --site filter (site %q)", d.Site()), nil
	}
	return true, "", nil
}

// ExpressionSpecification filters defects using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the defect.
func (s *ExpressionSpecification) IsSatisfiedBy(d *entities.Defect) (bool, string, error) {
	if s.program == nil {
		return true, "", nil
	}

	env := DefectEnv{
		Name:     d.Name(),
		Site:     d.Site(),
		Elements: d.Stoichiometry().Elements(),
		Charges:  d.Charges(),
	}

	output, err := expr.Run(s.program, env)
	if err != nil {
		return false, "", fmt.Errorf("filter expression failed on defect %s: %w", d.Name(), err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, "", fmt.Errorf("filter expression returned %T, not bool, on defect %s", output, d.Name())
	}
	if !result {
		return false, "excluded by --filter expression", nil
	}
	return true, "", nil
}
