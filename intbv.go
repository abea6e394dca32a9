// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package hdlnum implements arbitrary-precision two's complement bit-vectors
// for hardware modeling.
//
// IntBV is an integer with an optional half-open range [min, max). The range
// defines the bit width of the value: ranges with a negative min are signed and
// reserve a sign bit, other ranges are unsigned.
// Bits are indexed from the least significant bit, and slices are written
// downward and half-open, [high, low), like in HDLs.
//
// ModBV is an IntBV, which wraps around instead of failing on out-of-range assignments.
package hdlnum

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/exp/constraints"

	mu "github.com/avdva/hdlnum/internal/mathutil"
	su "github.com/avdva/hdlnum/internal/strutil"
)

var (
	bigZero = big.NewInt(0)
)

// IntBV is a bounded two's complement integer of arbitrary precision.
// The zero value is an unbounded zero.
// IntBV is not safe for concurrent mutation.
// Copying an IntBV struct shares its storage, use Clone to get an independent copy.
type IntBV struct {
	val      *big.Int
	min, max *big.Int // both nil, or both set.
	width    int
	wrap     bool
}

// New returns an unbounded value for v.
func New(v *big.Int) *IntBV {
	return &IntBV{val: new(big.Int).Set(v)}
}

// NewInt64 returns an unbounded value for v.
func NewInt64(v int64) *IntBV {
	return &IntBV{val: big.NewInt(v)}
}

// FromInt returns an unbounded value for any Go integer.
func FromInt[T constraints.Integer](v T) *IntBV {
	return &IntBV{val: bigFromInt(v)}
}

// NewBounded returns a value in the range [min, max).
// Returns ErrRange if min >= max, or if v is out of range.
func NewBounded(v, min, max *big.Int) (*IntBV, error) {
	return newBounded(v, min, max, false)
}

// NewBoundedInt64 is like NewBounded, but for int64 arguments.
func NewBoundedInt64(v, min, max int64) (*IntBV, error) {
	return newBounded(big.NewInt(v), big.NewInt(min), big.NewInt(max), false)
}

// BoundedFrom is like NewBounded, but for any Go integer type.
func BoundedFrom[T constraints.Integer](v, min, max T) (*IntBV, error) {
	return newBounded(bigFromInt(v), bigFromInt(min), bigFromInt(max), false)
}

// MustBounded is like NewBoundedInt64, but panics on error.
func MustBounded(v, min, max int64) *IntBV {
	x, err := NewBoundedInt64(v, min, max)
	if err != nil {
		panic(err)
	}
	return x
}

// NewUnsigned returns a value in the range [0, 2^width).
func NewUnsigned(v *big.Int, width int) (*IntBV, error) {
	if width < 0 {
		return nil, indexError("negative width %d", width)
	}
	return newBounded(v, bigZero, mu.Pow2(width), false)
}

// NewSigned returns a value in the range [-2^(width-1), 2^(width-1)).
func NewSigned(v *big.Int, width int) (*IntBV, error) {
	if width < 1 {
		return nil, indexError("signed width must be positive, got %d", width)
	}
	half := mu.Pow2(width - 1)
	return newBounded(v, new(big.Int).Neg(half), half, false)
}

func newBounded(v, min, max *big.Int, wrap bool) (*IntBV, error) {
	if min.Cmp(max) >= 0 {
		return nil, fmt.Errorf("%w: min %s >= max %s", ErrRange, min, max)
	}
	x := &IntBV{
		min:   new(big.Int).Set(min),
		max:   new(big.Int).Set(max),
		width: mu.RangeWidth(min, max),
		wrap:  wrap,
	}
	if err := x.assign(v); err != nil {
		return nil, err
	}
	return x, nil
}

func bigFromInt[T constraints.Integer](v T) *big.Int {
	if v < 0 {
		return big.NewInt(int64(v))
	}
	return new(big.Int).SetUint64(uint64(v))
}

func (x *IntBV) value() *big.Int {
	if x.val == nil {
		return bigZero
	}
	return x.val
}

// assign replaces the value with v according to the bounds policy.
// x is not modified on error.
func (x *IntBV) assign(v *big.Int) error {
	if x.min != nil && !mu.InRange(v, x.min, x.max) {
		if !x.wrap {
			return rangeError(v, x.min, x.max)
		}
		x.val = mu.Wrap(v, x.min, x.max)
		return nil
	}
	x.val = new(big.Int).Set(v)
	return nil
}

// Set replaces the value with v, checking it against the bounds.
func (x *IntBV) Set(v *big.Int) error {
	return x.assign(v)
}

// SetInt64 is like Set, but for int64 values.
func (x *IntBV) SetInt64(v int64) error {
	return x.assign(big.NewInt(v))
}

// Clone returns an independent copy of x.
func (x *IntBV) Clone() *IntBV {
	c := &IntBV{
		val:   new(big.Int).Set(x.value()),
		width: x.width,
		wrap:  x.wrap,
	}
	if x.min != nil {
		c.min, c.max = new(big.Int).Set(x.min), new(big.Int).Set(x.max)
	}
	return c
}

// Len returns the bit width derived from the range, or 0 for unbounded values.
func (x *IntBV) Len() int {
	return x.width
}

// Int returns a copy of the value.
func (x *IntBV) Int() *big.Int {
	return new(big.Int).Set(x.value())
}

// Int64 returns the value as int64. The result is undefined if it does not fit.
func (x *IntBV) Int64() int64 {
	return x.value().Int64()
}

// IsInt64 returns true if the value fits int64.
func (x *IntBV) IsInt64() bool {
	return x.value().IsInt64()
}

// Min returns a copy of the lower bound, or nil for unbounded values.
func (x *IntBV) Min() *big.Int {
	if x.min == nil {
		return nil
	}
	return new(big.Int).Set(x.min)
}

// Max returns a copy of the exclusive upper bound, or nil for unbounded values.
func (x *IntBV) Max() *big.Int {
	if x.max == nil {
		return nil
	}
	return new(big.Int).Set(x.max)
}

// IsBounded returns true if x has a range.
func (x *IntBV) IsBounded() bool {
	return x.min != nil
}

// IsSigned returns true if the range has a negative lower bound.
func (x *IntBV) IsSigned() bool {
	return x.min != nil && x.min.Sign() < 0
}

// Wraps returns true if out-of-range assignments wrap around.
func (x *IntBV) Wraps() bool {
	return x.wrap
}

// BitAt returns bit i of the infinite two's complement expansion of the value.
func (x *IntBV) BitAt(i int) (uint, error) {
	if i < 0 {
		return 0, indexError("negative index %d", i)
	}
	return x.value().Bit(i), nil
}

// SetBit sets bit i to b, which must be 0 or 1.
// The result is checked against the bounds, as Set does.
func (x *IntBV) SetBit(i int, b uint) error {
	if i < 0 {
		return indexError("negative index %d", i)
	}
	if b > 1 {
		return fmt.Errorf("%w: bit value %d is not 0 or 1", ErrRange, b)
	}
	return x.assign(new(big.Int).SetBit(x.value(), i, b))
}

func checkSlice(high, low int) error {
	if low < 0 {
		return indexError("slice [%d:%d] requires low >= 0", high, low)
	}
	if high <= low {
		return indexError("slice [%d:%d] requires high > low", high, low)
	}
	return nil
}

// Slice returns bits [low, high) as a new unsigned value with width high-low.
// The result never shares storage with x.
func (x *IntBV) Slice(high, low int) (*IntBV, error) {
	if err := checkSlice(high, low); err != nil {
		return nil, err
	}
	n := high - low
	return &IntBV{
		val:   mu.Extract(x.value(), low, n),
		min:   new(big.Int),
		max:   mu.Pow2(n),
		width: n,
	}, nil
}

// SliceFrom returns all bits starting from low.
// For a sized value it is Slice(Len(), low).
// Otherwise, or if low >= Len(), the result is the unbounded value >> low, which keeps the sign.
func (x *IntBV) SliceFrom(low int) (*IntBV, error) {
	if low < 0 {
		return nil, indexError("slice [:%d] requires low >= 0", low)
	}
	if low < x.width {
		return x.Slice(x.width, low)
	}
	return &IntBV{val: new(big.Int).Rsh(x.value(), uint(low))}, nil
}

// SetSlice writes the low high-low bits of v into bits [low, high).
// v must be in [-2^(high-low), 2^(high-low)).
func (x *IntBV) SetSlice(high, low int, v *big.Int) error {
	if err := checkSlice(high, low); err != nil {
		return err
	}
	n := high - low
	lim := mu.Pow2(n)
	if !mu.InRange(v, new(big.Int).Neg(lim), lim) {
		return fmt.Errorf("%w: %s does not fit slice [%d:%d]", ErrRange, v, high, low)
	}
	return x.assign(mu.Deposit(x.value(), low, n, v))
}

// SetSliceFrom replaces all bits starting from low with v.
func (x *IntBV) SetSliceFrom(low int, v *big.Int) error {
	if low < 0 {
		return indexError("slice [:%d] requires low >= 0", low)
	}
	r := new(big.Int).Lsh(v, uint(low))
	return x.assign(r.Add(r, mu.Extract(x.value(), 0, low)))
}

// Signed returns the value interpreted as a two's complement number of Len() bits.
// Signed ranges are returned as is.
// Returns ErrDomain for values without a width.
func (x *IntBV) Signed() (*big.Int, error) {
	if x.IsSigned() {
		return x.Int(), nil
	}
	if x.width == 0 {
		return nil, fmt.Errorf("%w: signed() of an unsized value", ErrDomain)
	}
	return mu.SignExtend(x.value(), x.width), nil
}

// Bits returns Len() bits of the value, most significant first.
func (x *IntBV) Bits() ([]uint, error) {
	if x.width == 0 {
		return nil, fmt.Errorf("%w: cannot iterate over an unsized value", ErrDomain)
	}
	v := x.value()
	result := make([]uint, x.width)
	for i := range result {
		result[i] = v.Bit(x.width - 1 - i)
	}
	return result, nil
}

// Bin returns the two's complement bit pattern of the value across Len() bits.
// Unsized values are rendered in their minimal two's complement form.
func (x *IntBV) Bin() string {
	return su.FormatBin(x.value(), x.width)
}

// String returns the decimal value.
func (x *IntBV) String() string {
	return x.value().String()
}

// GoString returns debug string representation.
func (x *IntBV) GoString() string {
	var b strings.Builder
	b.WriteString(x.String())
	if x.min != nil {
		fmt.Fprintf(&b, " [%s, %s) %d bits", x.min, x.max, x.width)
	}
	if x.wrap {
		b.WriteString(" wrap")
	}
	return b.String()
}

// ParseIntBV parses an integer literal, see strutil.ParseInt for the syntax.
// An unsigned binary literal, like 0b0101, returns an unsigned value as wide as its digits.
func ParseIntBV(s string) (*IntBV, error) {
	lit, err := su.ParseInt(s)
	if err != nil {
		return nil, err
	}
	if lit.Base == 2 && lit.Value.Sign() >= 0 {
		return NewUnsigned(lit.Value, lit.Digits)
	}
	return New(lit.Value), nil
}

// MustParseIntBV is like ParseIntBV, but panics on error.
func MustParseIntBV(s string) *IntBV {
	x, err := ParseIntBV(s)
	if err != nil {
		panic(err)
	}
	return x
}
