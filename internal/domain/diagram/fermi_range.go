package diagram

import (
	"fmt"

	"github.com/reglet-dev/translevel/internal/domain/entities"
)

// FermiRange is an optional Fermi-energy window. A nil Min means the valence
// band maximum (0.0) and a nil Max means the host's fundamental gap.
type FermiRange struct {
	Min *float64
	Max *float64
}

// Resolve returns the concrete bounds for host.
func (r FermiRange) Resolve(host *entities.Host) (efMin, efMax float64) {
	efMin = 0.0
	if r.Min != nil {
		efMin = *r.Min
	}
	efMax = host.FundamentalGap()
	if r.Max != nil {
		efMax = *r.Max
	}
	return efMin, efMax
}

// Validate rejects windows whose explicit bounds are reversed.
func (r FermiRange) Validate() error {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("invalid Fermi range: min %g is above max %g", *r.Min, *r.Max)
	}
	return nil
}
