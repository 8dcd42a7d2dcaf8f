// Package core provides parameter sets and validation for XR30256.
package core

import (
	"errors"
	"fmt"

	xr30256 "github.com/BackendStack21/xr30256-go"
)

// XR30256Params is the parameter set of the standard cipher.
//
// Early design notes describe the round function as "4 iterations of rule
// 30". The published test vectors use 255 generations per evolution, and so
// does this parameter set.
var XR30256Params = xr30256.Params{
	Variant:       xr30256.XR30256,
	Rule:          30,
	Rounds:        16,
	StepsPerRound: 4,
	Generations:   255,
}

// MaxGenerations bounds the generation count accepted by ValidateParams.
const MaxGenerations = 1 << 16

// GetParams returns the parameter set for the given variant.
func GetParams(variant xr30256.Variant) (xr30256.Params, error) {
	switch variant {
	case xr30256.XR30256:
		return XR30256Params, nil
	default:
		return xr30256.Params{}, fmt.Errorf("unknown variant: %s", variant)
	}
}

// ValidateParams validates the parameter set for consistency.
func ValidateParams(params xr30256.Params) error {
	if params.Rounds <= 0 {
		return errors.New("rounds must be positive")
	}
	// The key schedule produces exactly one subkey per step.
	if params.StepsPerRound != 4 {
		return errors.New("steps per round must be 4, one per subkey")
	}
	if params.Generations < 0 {
		return errors.New("generations must not be negative")
	}
	if params.Generations > MaxGenerations {
		return fmt.Errorf("generations must be at most %d", MaxGenerations)
	}
	if params.Rule == 0 || params.Rule == 255 {
		return fmt.Errorf("rule %d has a constant output and cannot drive the round function", params.Rule)
	}
	return nil
}
