package entities

import (
	"errors"
	"fmt"
)

// ErrNoChargeStates is returned by queries on a Defect without charge states.
var ErrNoChargeStates = errors.New("defect has no charge states")

// ErrEqualCharges is returned when a transition level is requested between a
// charge state and itself.
var ErrEqualCharges = errors.New("transition level needs two different charges")

// ErrDuplicateChargeState is returned when a charge is added twice.
var ErrDuplicateChargeState = errors.New("charge state already exists")

// UnknownChargeError indicates a charge the defect does not have.
type UnknownChargeError struct {
	Defect string
	Charge int
}

func (e *UnknownChargeError) Error() string {
	return fmt.Sprintf("defect %s has no charge state %+d", e.Defect, e.Charge)
}

// UnknownLimitError indicates a chemical-potential limit missing from a
// dataset.
type UnknownLimitError struct {
	Limit     string
	Available []string
}

func (e *UnknownLimitError) Error() string {
	return fmt.Sprintf("unknown chemical potential limit %q (available: %v)", e.Limit, e.Available)
}
