// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixbv implements binary fixed-point numbers of arbitrary precision.
//
// A FixBV is a stored integer scaled by a power of two: si * 2**shift.
// The stored integer is an hdlnum.IntBV, so a FixBV has the same bounds, width and
// bit-level access as a bounded integer. Arithmetic never loses precision,
// the only rounding operations are construction from real values and TruncateTo.
package fixbv

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"

	"github.com/avdva/hdlnum"
	mu "github.com/avdva/hdlnum/internal/mathutil"
	su "github.com/avdva/hdlnum/internal/strutil"
)

// RoundMode defines how values are snapped to the grid.
type RoundMode = mu.RoundMode

const (
	// RoundHalfAway rounds to the nearest grid point, ties away from zero.
	RoundHalfAway = mu.RoundHalfAway
	// RoundHalfToZero rounds to the nearest grid point, ties toward zero.
	RoundHalfToZero = mu.RoundHalfToZero
	// RoundHalfEven rounds to the nearest grid point, ties to the even stored integer.
	RoundHalfEven = mu.RoundHalfEven
	// RoundFloor rounds toward negative infinity.
	RoundFloor = mu.RoundFloor
	// RoundCeil rounds toward positive infinity.
	RoundCeil = mu.RoundCeil
)

const (
	snapMode     = RoundHalfAway
	truncateMode = RoundHalfToZero
)

// FixBV is a fixed-point number si * 2**shift.
// FixBV values are immutable, all operations return new values.
type FixBV struct {
	si      *hdlnum.IntBV
	shift   int
	lossy   bool
	real    bool
	snapped bool
}

// New returns a FixBV for an exact stored integer si.
// Bounds, if given, are checked against si.
func New(si *big.Int, shift int, opts ...Option) (*FixBV, error) {
	cfg, err := makeConfig(opts)
	if err != nil {
		return nil, err
	}
	return build(si, shift, cfg, false)
}

// FromInt64 is like New, but for int64 stored integers.
func FromInt64(si int64, shift int, opts ...Option) (*FixBV, error) {
	return New(big.NewInt(si), shift, opts...)
}

// FromInt returns a FixBV for an integer value v. The value is logical,
// so it is snapped to the grid if shift > 0.
func FromInt[T constraints.Integer](v T, shift int, opts ...Option) (*FixBV, error) {
	r := new(big.Rat).SetInt(hdlnum.FromInt(v).Int())
	return FromRat(r, shift, opts...)
}

// FromRat returns a FixBV for a logical value r.
// If r is not on the 2**shift grid, it is rounded to the nearest grid point,
// ties away from zero, which is allowed only with WithLossy.
// Otherwise ErrPrecision is returned.
func FromRat(r *big.Rat, shift int, opts ...Option) (*FixBV, error) {
	cfg, err := makeConfig(opts)
	if err != nil {
		return nil, err
	}
	si, exact, err := snap(r, shift, cfg.lossy)
	if err != nil {
		return nil, err
	}
	return build(si, shift, cfg, !exact)
}

// FromFloat64 is like FromRat, but for float64 values.
// NaN and infinities return ErrDomain.
func FromFloat64(f float64, shift int, opts ...Option) (*FixBV, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: bad float number %v", hdlnum.ErrDomain, f)
	}
	return FromRat(new(big.Rat).SetFloat64(f), shift, opts...)
}

// FromString is like FromRat, but parses a decimal string, like "-12.375" or "1e-3".
// The string is parsed exactly, so "0.1" is off-grid for every shift.
func FromString(s string, shift int, opts ...Option) (*FixBV, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return FromRat(d.Rat(), shift, opts...)
}

// FromIntBV returns v at shift 0, keeping its bounds.
func FromIntBV(v *hdlnum.IntBV, opts ...Option) (*FixBV, error) {
	cfg, err := makeConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.min == nil && cfg.minReal == nil && v.IsBounded() {
		cfg.min, cfg.max = v.Min(), v.Max()
	}
	return build(v.Int(), 0, cfg, false)
}

// MustNew is like New, but panics on error.
func MustNew(si int64, shift int, opts ...Option) *FixBV {
	x, err := FromInt64(si, shift, opts...)
	if err != nil {
		panic(err)
	}
	return x
}

// MustFromString is like FromString, but panics on error.
func MustFromString(s string, shift int, opts ...Option) *FixBV {
	x, err := FromString(s, shift, opts...)
	if err != nil {
		panic(err)
	}
	return x
}

// snap returns r / 2**shift rounded to an integer.
func snap(r *big.Rat, shift int, lossy bool) (si *big.Int, exact bool, err error) {
	si, exact = mu.RoundRat(mu.ScaleRat(r, -shift), snapMode)
	if !exact && !lossy {
		return nil, false, fmt.Errorf("%w: %s is not a multiple of 2**%d", hdlnum.ErrPrecision, r.RatString(), shift)
	}
	return si, exact, nil
}

func build(si *big.Int, shift int, cfg config, snapped bool) (*FixBV, error) {
	min, max := cfg.min, cfg.max
	if cfg.minReal != nil {
		var err error
		var exactMin, exactMax bool
		if min, exactMin, err = snap(cfg.minReal, shift, cfg.lossy); err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		if max, exactMax, err = snap(cfg.maxReal, shift, cfg.lossy); err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		snapped = snapped || !exactMin || !exactMax
	}
	x := &FixBV{shift: shift, lossy: cfg.lossy, real: cfg.real, snapped: snapped}
	if min == nil {
		x.si = hdlnum.New(si)
		return x, nil
	}
	var err error
	if x.si, err = hdlnum.NewBounded(si, min, max); err != nil {
		return nil, err
	}
	return x, nil
}

// derive returns an unbounded value with the display settings of x.
func (x *FixBV) derive(si *big.Int, shift int) *FixBV {
	return &FixBV{si: hdlnum.New(si), shift: shift, lossy: x.lossy, real: x.real}
}

func (x *FixBV) stored() *hdlnum.IntBV {
	if x.si == nil {
		return &hdlnum.IntBV{}
	}
	return x.si
}

// Shift returns the base-2 exponent.
func (x *FixBV) Shift() int {
	return x.shift
}

// FractionLength returns the number of fractional bits, -Shift().
func (x *FixBV) FractionLength() int {
	return -x.shift
}

// StoredInt returns a copy of the stored integer.
func (x *FixBV) StoredInt() *big.Int {
	return x.stored().Int()
}

// Stored returns a copy of the stored integer with its bounds.
func (x *FixBV) Stored() *hdlnum.IntBV {
	return x.stored().Clone()
}

// Lossy returns true if the value was constructed with WithLossy.
func (x *FixBV) Lossy() bool {
	return x.lossy
}

// Snapped returns true if the value or its bounds were rounded on construction.
func (x *FixBV) Snapped() bool {
	return x.snapped
}

// IsBounded returns true if x has a range.
func (x *FixBV) IsBounded() bool {
	return x.stored().IsBounded()
}

// MinReal returns the logical lower bound, or nil for unbounded values.
func (x *FixBV) MinReal() *big.Rat {
	return scaled(x.stored().Min(), x.shift)
}

// MaxReal returns the logical exclusive upper bound, or nil for unbounded values.
func (x *FixBV) MaxReal() *big.Rat {
	return scaled(x.stored().Max(), x.shift)
}

func scaled(v *big.Int, shift int) *big.Rat {
	if v == nil {
		return nil
	}
	return mu.ScaleRat(new(big.Rat).SetInt(v), shift)
}

// Rat returns the exact logical value.
func (x *FixBV) Rat() *big.Rat {
	return scaled(x.stored().Int(), x.shift)
}

// Float64 returns the nearest float64 to the logical value.
func (x *FixBV) Float64() float64 {
	f, _ := x.Rat().Float64()
	return f
}

// Decimal returns the exact logical value as a decimal.
// Every binary fraction has a finite decimal expansion: si * 2**-k == si * 5**k * 10**-k.
func (x *FixBV) Decimal() decimal.Decimal {
	si := x.stored().Int()
	if x.shift >= 0 {
		return decimal.NewFromBigInt(si.Lsh(si, uint(x.shift)), 0)
	}
	k := -x.shift
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(k)), nil)
	return decimal.NewFromBigInt(si.Mul(si, p), int32(-k))
}

// Int returns the integer part of the logical value, truncated toward zero.
func (x *FixBV) Int() *big.Int {
	r := x.Rat()
	return new(big.Int).Quo(r.Num(), r.Denom())
}

// IsInteger returns true if the logical value has no fractional part.
func (x *FixBV) IsInteger() bool {
	return x.Rat().IsInt()
}

// Len returns the width of the stored integer.
func (x *FixBV) Len() int {
	return x.stored().Len()
}

// BitAt returns bit i of the stored integer.
func (x *FixBV) BitAt(i int) (uint, error) {
	return x.stored().BitAt(i)
}

// Bits returns Len() bits of the stored integer, most significant first.
// Returns ErrDomain for unbounded values.
func (x *FixBV) Bits() ([]uint, error) {
	return x.stored().Bits()
}

// Slice returns bits [low, high) of the stored integer as a new unsigned value.
// Bit positions are counted in the stored integer, not in the logical value.
func (x *FixBV) Slice(high, low int) (*hdlnum.IntBV, error) {
	return x.stored().Slice(high, low)
}

// SliceFrom returns bits of the stored integer starting from low.
func (x *FixBV) SliceFrom(low int) (*hdlnum.IntBV, error) {
	return x.stored().SliceFrom(low)
}

// Signed returns the stored integer interpreted as a two's complement number of Len() bits.
func (x *FixBV) Signed() (*big.Int, error) {
	return x.stored().Signed()
}

// Bin returns the two's complement bit pattern of the stored integer.
func (x *FixBV) Bin() string {
	return x.stored().Bin()
}

// String returns "<si> * 2**<shift>", or the exact decimal value if WithRealFormat was used.
func (x *FixBV) String() string {
	if x.real {
		return x.Decimal().String()
	}
	return su.FormatScaled(x.stored().Int(), x.shift)
}

// GoString returns debug string representation.
func (x *FixBV) GoString() string {
	return x.String() + fmt.Sprintf(" {%#v, %d}", x.stored(), x.shift)
}
