// Copyright 2020 Aleksandr Demakin. All rights reserved.

package hdlnum

import (
	"fmt"
	"math/big"

	mu "github.com/avdva/hdlnum/internal/mathutil"
)

// Integer is the capability set shared by IntBV and ModBV.
// Arithmetic accepts any Integer and always returns an unbounded *IntBV:
// only assignment into a bounded value is range-checked.
type Integer interface {
	Int() *big.Int
	Len() int
}

var (
	_ Integer = (*IntBV)(nil)
	_ Integer = (*ModBV)(nil)
)

func unbounded(v *big.Int) *IntBV {
	return &IntBV{val: v}
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func (x *IntBV) Cmp(y Integer) int {
	return x.value().Cmp(y.Int())
}

// Eq returns true if both values represent the same number. Bounds are not compared.
func (x *IntBV) Eq(y Integer) bool {
	return x.Cmp(y) == 0
}

// Sign returns -1 if x < 0, 0 if x == 0, 1 if x > 0.
func (x *IntBV) Sign() int {
	return x.value().Sign()
}

// IsZero returns true if the value is zero.
func (x *IntBV) IsZero() bool {
	return x.value().Sign() == 0
}

// Add returns x + y.
func (x *IntBV) Add(y Integer) *IntBV {
	return unbounded(new(big.Int).Add(x.value(), y.Int()))
}

// Sub returns x - y.
func (x *IntBV) Sub(y Integer) *IntBV {
	return unbounded(new(big.Int).Sub(x.value(), y.Int()))
}

// Mul returns x * y.
func (x *IntBV) Mul(y Integer) *IntBV {
	return unbounded(new(big.Int).Mul(x.value(), y.Int()))
}

// DivMod returns such q and r, that x = q*y + r, where q is rounded toward negative infinity,
// and r has the sign of y. Returns ErrDomain if y is zero.
func (x *IntBV) DivMod(y Integer) (q, r *IntBV, err error) {
	d := y.Int()
	if d.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: division by zero", ErrDomain)
	}
	qi, ri := mu.FloorDivMod(x.value(), d)
	return unbounded(qi), unbounded(ri), nil
}

// FloorDiv returns x / y rounded toward negative infinity.
func (x *IntBV) FloorDiv(y Integer) (*IntBV, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns x mod y with the sign of y.
func (x *IntBV) Mod(y Integer) (*IntBV, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// Lsh returns x << n.
func (x *IntBV) Lsh(n uint) *IntBV {
	return unbounded(new(big.Int).Lsh(x.value(), n))
}

// Rsh returns x >> n, an arithmetic shift.
func (x *IntBV) Rsh(n uint) *IntBV {
	return unbounded(new(big.Int).Rsh(x.value(), n))
}

// And returns x & y.
func (x *IntBV) And(y Integer) *IntBV {
	return unbounded(new(big.Int).And(x.value(), y.Int()))
}

// Or returns x | y.
func (x *IntBV) Or(y Integer) *IntBV {
	return unbounded(new(big.Int).Or(x.value(), y.Int()))
}

// Xor returns x ^ y.
func (x *IntBV) Xor(y Integer) *IntBV {
	return unbounded(new(big.Int).Xor(x.value(), y.Int()))
}

// Not returns ^x. Sized unsigned values are inverted within their width,
// so the result stays non-negative.
func (x *IntBV) Not() *IntBV {
	r := new(big.Int).Not(x.value())
	if x.width > 0 && !x.IsSigned() {
		r.And(r, mu.Mask(x.width))
	}
	return unbounded(r)
}

// Neg returns -x.
func (x *IntBV) Neg() *IntBV {
	return unbounded(new(big.Int).Neg(x.value()))
}

// Abs returns |x|.
func (x *IntBV) Abs() *IntBV {
	return unbounded(new(big.Int).Abs(x.value()))
}
