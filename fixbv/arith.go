// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixbv

import (
	"fmt"
	"math/big"

	"github.com/avdva/hdlnum"
	mu "github.com/avdva/hdlnum/internal/mathutil"
)

// at returns the stored integer of x rescaled to shift <= x.shift.
func (x *FixBV) at(shift int) *big.Int {
	si := x.stored().Int()
	return si.Lsh(si, uint(x.shift-shift))
}

func align(x, y *FixBV) (a, b *big.Int, shift int) {
	shift = mu.MinInt(x.shift, y.shift)
	return x.at(shift), y.at(shift), shift
}

// Align returns x and y rescaled to the smaller of their shifts.
// Rescaling is exact, bounds are rescaled too.
func Align(x, y *FixBV) (*FixBV, *FixBV) {
	shift := mu.MinInt(x.shift, y.shift)
	return x.rescale(shift), y.rescale(shift)
}

func (x *FixBV) rescale(shift int) *FixBV {
	r := &FixBV{shift: shift, lossy: x.lossy, real: x.real, snapped: x.snapped}
	si := x.stored()
	if !si.IsBounded() {
		r.si = hdlnum.New(x.at(shift))
		return r
	}
	d := uint(x.shift - shift)
	min, max := si.Min(), si.Max()
	r.si, _ = hdlnum.NewBounded(x.at(shift), min.Lsh(min, d), max.Lsh(max, d)) // scaling keeps v in range.
	return r
}

// Cmp compares two values.
// Returns -1 if x < y, 0 if x == y, 1 if x > y
func (x *FixBV) Cmp(y *FixBV) int {
	a, b, _ := align(x, y)
	return a.Cmp(b)
}

// Eq returns true if both values are equal. Shifts and bounds are not compared.
func (x *FixBV) Eq(y *FixBV) bool {
	return x.Cmp(y) == 0
}

// Sign returns -1 if x < 0, 0 if x == 0, 1 if x > 0.
func (x *FixBV) Sign() int {
	return x.stored().Sign()
}

// IsZero returns true if the value is zero.
func (x *FixBV) IsZero() bool {
	return x.stored().IsZero()
}

// Add returns x + y at the smaller of the shifts.
func (x *FixBV) Add(y *FixBV) *FixBV {
	a, b, shift := align(x, y)
	return x.derive(a.Add(a, b), shift)
}

// Sub returns x - y at the smaller of the shifts.
func (x *FixBV) Sub(y *FixBV) *FixBV {
	a, b, shift := align(x, y)
	return x.derive(a.Sub(a, b), shift)
}

// Mul returns x * y at the sum of the shifts.
func (x *FixBV) Mul(y *FixBV) *FixBV {
	si := x.stored().Int()
	return x.derive(si.Mul(si, y.stored().Int()), x.shift+y.shift)
}

// Div returns x / y, if the quotient has a finite binary representation.
// The result has shift x.Shift()-y.Shift(), or less, if more fractional bits are needed.
// Returns ErrExactDivision if the quotient is not a binary fraction, and ErrDomain if y is zero.
func (x *FixBV) Div(y *FixBV) (*FixBV, error) {
	if y.IsZero() {
		return nil, fmt.Errorf("%w: division by zero", hdlnum.ErrDomain)
	}
	q := new(big.Rat).Quo(x.Rat(), y.Rat())
	k, ok := mu.Log2Exact(q.Denom())
	if !ok {
		return nil, fmt.Errorf("%w: %s / %s = %s", hdlnum.ErrExactDivision, x, y, q.RatString())
	}
	shift := mu.MinInt(x.shift-y.shift, -k)
	si, _ := mu.RoundRat(mu.ScaleRat(q, -shift), snapMode) // exact by construction.
	return x.derive(si, shift), nil
}

// DivMod returns such q and r, that x = q*y + r, where q is an integer at shift 0,
// rounded toward negative infinity, and r has the sign of y and the smaller of the shifts.
// Returns ErrDomain if y is zero.
func (x *FixBV) DivMod(y *FixBV) (q, r *FixBV, err error) {
	if y.IsZero() {
		return nil, nil, fmt.Errorf("%w: division by zero", hdlnum.ErrDomain)
	}
	a, b, shift := align(x, y)
	qi, ri := mu.FloorDivMod(a, b)
	return x.derive(qi, 0), x.derive(ri, shift), nil
}

// FloorDiv returns x / y rounded toward negative infinity, at shift 0.
func (x *FixBV) FloorDiv(y *FixBV) (*FixBV, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns x mod y with the sign of y.
func (x *FixBV) Mod(y *FixBV) (*FixBV, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// Lsh returns x * 2**n. Only the shift is changed.
func (x *FixBV) Lsh(n uint) *FixBV {
	return x.derive(x.stored().Int(), x.shift+int(n))
}

// Rsh returns x / 2**n. Only the shift is changed.
func (x *FixBV) Rsh(n uint) *FixBV {
	return x.derive(x.stored().Int(), x.shift-int(n))
}

// And returns the bitwise and of the aligned stored integers.
func (x *FixBV) And(y *FixBV) *FixBV {
	a, b, shift := align(x, y)
	return x.derive(a.And(a, b), shift)
}

// Or returns the bitwise or of the aligned stored integers.
func (x *FixBV) Or(y *FixBV) *FixBV {
	a, b, shift := align(x, y)
	return x.derive(a.Or(a, b), shift)
}

// Xor returns the bitwise xor of the aligned stored integers.
func (x *FixBV) Xor(y *FixBV) *FixBV {
	a, b, shift := align(x, y)
	return x.derive(a.Xor(a, b), shift)
}

// Not returns the bitwise inversion of the stored integer at the same shift.
// Stored integers with an unsigned range are inverted within their width.
func (x *FixBV) Not() *FixBV {
	return x.derive(x.stored().Not().Int(), x.shift)
}

// Neg returns -x.
func (x *FixBV) Neg() *FixBV {
	si := x.stored().Int()
	return x.derive(si.Neg(si), x.shift)
}

// Abs returns |x|.
func (x *FixBV) Abs() *FixBV {
	si := x.stored().Int()
	return x.derive(si.Abs(si), x.shift)
}

// TruncateTo rescales x to shift, rounding to the nearest grid point, ties toward zero,
// so 12 * 2**-8 becomes 1 * 2**-5. Note that construction from real values rounds
// ties away from zero. Use TruncateToMode(shift, RoundHalfAway) for that policy.
// It is the only rounding operation on existing values.
func (x *FixBV) TruncateTo(shift int) *FixBV {
	return x.TruncateToMode(shift, truncateMode)
}

// TruncateToMode is like TruncateTo, but uses the given rounding mode.
// Panics on an unknown mode.
func (x *FixBV) TruncateToMode(shift int, mode RoundMode) *FixBV {
	if shift <= x.shift {
		return x.derive(x.at(shift), shift)
	}
	si, _ := mu.ShiftRound(x.stored().Int(), shift-x.shift, mode)
	return x.derive(si, shift)
}

// TruncateLike truncates x to the shift of t, and checks the result against the bounds of t.
// The result takes the settings of t.
// Returns ErrRange if the truncated value is out of range.
func (x *FixBV) TruncateLike(t *FixBV) (*FixBV, error) {
	v := x.TruncateTo(t.shift)
	r := &FixBV{shift: t.shift, lossy: t.lossy, real: t.real}
	ts := t.stored()
	if !ts.IsBounded() {
		r.si = v.si
		return r, nil
	}
	var err error
	if r.si, err = hdlnum.NewBounded(v.StoredInt(), ts.Min(), ts.Max()); err != nil {
		return nil, err
	}
	return r, nil
}
