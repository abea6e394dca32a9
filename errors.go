// Copyright 2020 Aleksandr Demakin. All rights reserved.

package hdlnum

import (
	"errors"
	"fmt"
	"math/big"
)

// Error kinds. Errors of value operations, like construction, bit access,
// arithmetic and rounding, can be matched against one of them with errors.Is.
// Syntax errors of ParseIntBV, fixbv.FromString and UnmarshalJSON are plain
// errors and match none of them.
var (
	// ErrRange is returned when a value falls outside of [min, max) and wraparound is not the policy.
	ErrRange = errors.New("value out of range")
	// ErrIndex is returned for negative bit indices and empty or reversed slices.
	ErrIndex = errors.New("invalid bit index")
	// ErrDomain is returned when an operation is undefined for the current state.
	ErrDomain = errors.New("operation undefined")
	// ErrPrecision is returned when a real value does not lie on the grid and lossy conversion was not allowed.
	ErrPrecision = errors.New("lossy conversion")
	// ErrExactDivision is returned when a quotient has no exact finite binary representation.
	ErrExactDivision = errors.New("inexact division")
)

func rangeError(v, min, max *big.Int) error {
	return fmt.Errorf("%w: %s not in [%s, %s)", ErrRange, v, min, max)
}

func indexError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrIndex}, args...)...)
}
