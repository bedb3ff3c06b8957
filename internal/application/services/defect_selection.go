// Package services contains application use cases.
package services

import (
	"github.com/reglet-dev/translevel/internal/application/dto"
	apperrors "github.com/reglet-dev/translevel/internal/application/errors"
	"github.com/reglet-dev/translevel/internal/domain/services"
)

// BuildDefectFilter turns filter options into a DefectFilter, compiling the
// filter expression if one is given. Empty options yield a nil filter, which
// includes every defect.
func BuildDefectFilter(opts dto.FilterOptions) (*services.DefectFilter, error) {
	if opts.IsEmpty() {
		return nil, nil
	}

	filter := services.NewDefectFilter().
		WithNames(opts.Names).
		WithExcludedNames(opts.ExcludeNames).
		WithSites(opts.Sites)

	if opts.FilterExpression != "" {
		program, err := services.CompileFilter(opts.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", err.Error())
		}
		filter.WithFilterExpression(program)
	}
	return filter, nil
}
