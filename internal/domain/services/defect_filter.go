package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reglet-dev/translevel/internal/domain/entities"
)

// DefectEnv defines the variables available during filter expression evaluation.
type DefectEnv struct {
	Name     string   `expr:"name"`
	Site     string   `expr:"site"`
	Elements []string `expr:"elements"`
	Charges  []int    `expr:"charges"`
}

// CompileFilter compiles a boolean filter expression over DefectEnv.
func CompileFilter(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(DefectEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// DefectFilter selects which defects of a dataset are profiled.
type DefectFilter struct {
	// Exclusive mode: only include named defects
	names map[string]bool

	excludeNames map[string]bool
	includeSites map[string]bool

	filterProgram *vm.Program
}

// NewDefectFilter initializes a new empty filter.
func NewDefectFilter() *DefectFilter {
	return &DefectFilter{
		names:        make(map[string]bool),
		excludeNames: make(map[string]bool),
		includeSites: make(map[string]bool),
	}
}

// WithNames restricts the run to ONLY the named defects.
// If set, all other filters are ignored.
func (f *DefectFilter) WithNames(names []string) *DefectFilter {
	f.names = toSet(names)
	return f
}

// WithExcludedNames excludes specific defects.
func (f *DefectFilter) WithExcludedNames(names []string) *DefectFilter {
	f.excludeNames = toSet(names)
	return f
}

// WithSites includes only defects on any of these sites.
func (f *DefectFilter) WithSites(sites []string) *DefectFilter {
	f.includeSites = toSet(sites)
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *DefectFilter) WithFilterExpression(program *vm.Program) *DefectFilter {
	f.filterProgram = program
	return f
}

// ShouldInclude evaluates whether a defect matches the filter criteria.
// It returns false with a reason when the defect is left out, and an error
// when the filter expression fails at run time.
func (f *DefectFilter) ShouldInclude(d *entities.Defect) (bool, string, error) {
	if f == nil {
		return true, "", nil
	}

	if len(f.names) > 0 {
		return NewExclusiveNamesSpecification(f.names).IsSatisfiedBy(d)
	}

	var specs []DefectSpecification
	if len(f.excludeNames) > 0 {
		specs = append(specs, NewExcludedNamesSpecification(f.excludeNames))
	}
	if len(f.includeSites) > 0 {
		specs = append(specs, NewIncludedSitesSpecification(f.includeSites))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	return NewAndSpecification(specs...).IsSatisfiedBy(d)
}

// toSet converts a slice to a map (set)
func toSet(slice []string) map[string]bool {
	s := make(map[string]bool, len(slice))
	for _, item := range slice {
		s[item] = true
	}
	return s
}
