// Copyright 2020 Aleksandr Demakin. All rights reserved.

package hdlnum

import (
	"fmt"
	"math/big"
)

// ModBV is an IntBV with wraparound semantics: an assignment that would leave
// [min, max) stores (v - min) mod (max - min) + min instead of failing.
// ModBV always has both bounds.
type ModBV struct {
	IntBV
}

// NewModBV returns a wrapping value in the range [min, max).
// The initial value is wrapped as well.
// Returns ErrRange if min >= max.
func NewModBV(v, min, max *big.Int) (*ModBV, error) {
	if min == nil || max == nil {
		return nil, fmt.Errorf("%w: wraparound requires both bounds", ErrDomain)
	}
	x, err := newBounded(v, min, max, true)
	if err != nil {
		return nil, err
	}
	return &ModBV{IntBV: *x}, nil
}

// NewModBVInt64 is like NewModBV, but for int64 arguments.
func NewModBVInt64(v, min, max int64) (*ModBV, error) {
	return NewModBV(big.NewInt(v), big.NewInt(min), big.NewInt(max))
}

// MustModBV is like NewModBVInt64, but panics on error.
func MustModBV(v, min, max int64) *ModBV {
	x, err := NewModBVInt64(v, min, max)
	if err != nil {
		panic(err)
	}
	return x
}

// NewModUnsigned returns a wrapping value in the range [0, 2^width).
func NewModUnsigned(v *big.Int, width int) (*ModBV, error) {
	if width < 0 {
		return nil, indexError("negative width %d", width)
	}
	return NewModBV(v, new(big.Int), new(big.Int).Lsh(big.NewInt(1), uint(width)))
}

// Clone returns an independent copy of x.
func (x *ModBV) Clone() *ModBV {
	return &ModBV{IntBV: *x.IntBV.Clone()}
}

// Wrap returns v wrapped into the range of x without modifying x.
func (x *ModBV) Wrap(v *big.Int) *big.Int {
	c := x.Clone()
	_ = c.assign(v) // never fails for a wrapping value.
	return c.Int()
}
