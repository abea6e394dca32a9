// Copyright 2020 Aleksandr Demakin. All rights reserved.

package hdlnum

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnbounded(t *testing.T) {
	a := assert.New(t)
	x := NewInt64(24)
	a.Equal(0, x.Len())
	a.Nil(x.Min())
	a.Nil(x.Max())
	a.False(x.IsBounded())
	a.Equal(int64(24), x.Int64())
	a.NoError(x.SetInt64(-1 << 40))
	a.Equal(int64(-1<<40), x.Int64())

	var zero IntBV
	a.Equal("0", zero.String())
	a.Equal(0, zero.Len())
	b, err := zero.BitAt(3)
	a.NoError(err)
	a.Equal(uint(0), b)
}

func TestNewBounded(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v, min, max int64
		width       int
		err         error
	}{
		{6, -13, 7, 5, nil},
		{0, -4, 4, 3, nil},
		{0, -7, 4, 4, nil},
		{0, -1, 4, 3, nil},
		{0, 0, 4, 2, nil},
		{0, 0, 1, 0, nil},
		{1, 0, 2, 1, nil},
		{-8, -8, -1, 4, nil},
		{7, 0, 7, 0, ErrRange},
		{-14, -13, 7, 0, ErrRange},
		{0, 5, 5, 0, ErrRange},
		{0, 6, 5, 0, ErrRange},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, err := NewBoundedInt64(test.v, test.min, test.max)
			if test.err != nil {
				a.True(errors.Is(err, test.err), "%v", err)
				a.Nil(x)
				return
			}
			if a.NoError(err) {
				a.Equal(test.width, x.Len())
				a.Equal(test.v, x.Int64())
				a.Equal(test.min, x.Min().Int64())
				a.Equal(test.max, x.Max().Int64())
			}
		})
	}
}

func TestBoundedFrom(t *testing.T) {
	a := assert.New(t)
	x, err := BoundedFrom[uint8](200, 0, 255)
	require.NoError(t, err)
	a.Equal(8, x.Len())
	a.Equal(int64(200), x.Int64())

	y, err := BoundedFrom(int16(-3), -128, 128)
	require.NoError(t, err)
	a.Equal(8, y.Len())

	z := FromInt(uint64(1<<63 + 5))
	a.Equal("9223372036854775813", z.String())

	_, err = BoundedFrom(10, 0, 10)
	a.True(errors.Is(err, ErrRange))
}

func TestWideBounds(t *testing.T) {
	a := assert.New(t)
	p99 := new(big.Int).Lsh(big.NewInt(1), 99)
	x, err := NewBounded(big.NewInt(0), new(big.Int).Neg(p99), big.NewInt(1))
	require.NoError(t, err)
	a.Equal(100, x.Len())
	x, err = NewBounded(big.NewInt(0), big.NewInt(0), p99)
	require.NoError(t, err)
	a.Equal(99, x.Len())
}

func TestUnsignedSigned(t *testing.T) {
	a := assert.New(t)
	u, err := NewUnsigned(big.NewInt(255), 8)
	require.NoError(t, err)
	a.Equal(8, u.Len())
	a.False(u.IsSigned())
	_, err = NewUnsigned(big.NewInt(256), 8)
	a.True(errors.Is(err, ErrRange))

	s, err := NewSigned(big.NewInt(-128), 8)
	require.NoError(t, err)
	a.Equal(8, s.Len())
	a.True(s.IsSigned())
	_, err = NewSigned(big.NewInt(128), 8)
	a.True(errors.Is(err, ErrRange))
	_, err = NewSigned(big.NewInt(0), 0)
	a.True(errors.Is(err, ErrIndex))
}

func TestSetKeepsValueOnError(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(3, 0, 8)
	err := x.SetInt64(8)
	a.True(errors.Is(err, ErrRange))
	a.EqualError(err, "value out of range: 8 not in [0, 8)")
	a.Equal(int64(3), x.Int64())
	a.NoError(x.SetInt64(7))
	a.Equal(int64(7), x.Int64())
	a.NoError(x.SetInt64(0))
	a.True(errors.Is(x.SetInt64(-1), ErrRange))
	a.Equal(int64(0), x.Int64())
}

func TestSetDoesNotAlias(t *testing.T) {
	a := assert.New(t)
	v := big.NewInt(5)
	x := New(v)
	v.SetInt64(6)
	a.Equal(int64(5), x.Int64())
	x.Int().SetInt64(7)
	a.Equal(int64(5), x.Int64())
	c := x.Clone()
	a.NoError(c.SetInt64(9))
	a.Equal(int64(5), x.Int64())
}

func TestBitAt(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(-6, -8, 8) // 1010
	expected := []uint{0, 1, 0, 1, 1, 1, 1, 1, 1, 1}
	for i, e := range expected {
		b, err := x.BitAt(i)
		a.NoError(err)
		a.Equal(e, b, "bit %d", i)
	}
	b, err := x.BitAt(1000)
	a.NoError(err)
	a.Equal(uint(1), b)

	y := NewInt64(5)
	b, err = y.BitAt(1000)
	a.NoError(err)
	a.Equal(uint(0), b)

	_, err = x.BitAt(-1)
	a.True(errors.Is(err, ErrIndex))
}

func TestSetBit(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(0, 0, 16)
	a.NoError(x.SetBit(3, 1))
	a.Equal(int64(8), x.Int64())
	a.NoError(x.SetBit(0, 1))
	a.Equal(int64(9), x.Int64())
	a.NoError(x.SetBit(3, 0))
	a.Equal(int64(1), x.Int64())
	a.True(errors.Is(x.SetBit(4, 1), ErrRange))
	a.Equal(int64(1), x.Int64())
	a.True(errors.Is(x.SetBit(-1, 1), ErrIndex))
	a.True(errors.Is(x.SetBit(0, 2), ErrRange))

	s := MustBounded(-1, -8, 8)
	a.NoError(s.SetBit(0, 0))
	a.Equal(int64(-2), s.Int64())
	a.True(errors.Is(s.SetBit(3, 0), ErrRange)) // ...11110 -> ...10110
	a.Equal(int64(-2), s.Int64())
	a.NoError(s.SetBit(2, 0))
	a.Equal(int64(-6), s.Int64())
}

func TestSlice(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v         int64
		high, low int
		result    int64
		err       error
	}{
		{24, 4, 1, 4, nil},
		{24, 5, 1, 12, nil},
		{24, 5, 0, 24, nil},
		{24, 2, 0, 0, nil},
		{-1, 8, 0, 255, nil},
		{-13, 5, 0, 19, nil},
		{-13, 3, 1, 1, nil},
		{-13, 10, 5, 31, nil},
		{24, 1, 1, 0, ErrIndex},
		{24, 1, 2, 0, ErrIndex},
		{24, 3, -1, 0, ErrIndex},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			s, err := NewInt64(test.v).Slice(test.high, test.low)
			if test.err != nil {
				a.True(errors.Is(err, test.err))
				return
			}
			if a.NoError(err) {
				n := test.high - test.low
				a.Equal(test.result, s.Int64())
				a.Equal(n, s.Len())
				a.Equal(int64(0), s.Min().Int64())
				a.Equal(int64(1)<<n, s.Max().Int64())
				a.True(s.Sign() >= 0)
			}
		})
	}
}

func TestSliceIsIndependent(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(24, 0, 32)
	s, err := x.Slice(5, 1)
	require.NoError(t, err)
	a.Equal(int64(12), s.Int64())
	a.NoError(x.SetInt64(0))
	a.Equal(int64(12), s.Int64())
	a.NoError(s.SetInt64(1))
	a.Equal(int64(0), x.Int64())
}

func TestSliceFrom(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(-13, -13, 7)
	s, err := x.SliceFrom(1)
	require.NoError(t, err)
	a.Equal(int64(9), s.Int64())
	a.Equal(4, s.Len())

	s, err = x.SliceFrom(5)
	require.NoError(t, err)
	a.Equal(int64(-1), s.Int64())
	a.False(s.IsBounded())

	s, err = NewInt64(24).SliceFrom(3)
	require.NoError(t, err)
	a.Equal(int64(3), s.Int64())
	a.False(s.IsBounded())

	_, err = x.SliceFrom(-1)
	a.True(errors.Is(err, ErrIndex))
}

func TestSliceRoundTrip(t *testing.T) {
	a := assert.New(t)
	for min := int64(-20); min < 0; min += 3 {
		for v := min; v < 20; v++ {
			x := MustBounded(v, min, 20)
			w := x.Len()
			s, err := x.Slice(w, 0)
			require.NoError(t, err)
			var rebuilt int64
			for i := 0; i < w; i++ {
				b, err := s.BitAt(i)
				require.NoError(t, err)
				rebuilt |= int64(b) << i
			}
			if v >= 0 {
				a.Equal(v, rebuilt)
			} else {
				a.Equal(v+int64(1)<<w, rebuilt)
			}
		}
	}
}

func TestSetSlice(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(0, 0, 256)
	a.NoError(x.SetSlice(8, 4, big.NewInt(0xa)))
	a.Equal(int64(0xa0), x.Int64())
	a.NoError(x.SetSlice(2, 0, big.NewInt(-1)))
	a.Equal(int64(0xa3), x.Int64())
	a.NoError(x.SetSlice(8, 4, big.NewInt(0)))
	a.Equal(int64(0x03), x.Int64())

	a.True(errors.Is(x.SetSlice(4, 0, big.NewInt(16)), ErrRange))
	a.True(errors.Is(x.SetSlice(4, 0, big.NewInt(-17)), ErrRange))
	a.True(errors.Is(x.SetSlice(9, 8, big.NewInt(1)), ErrRange))
	a.Equal(int64(0x03), x.Int64())
	a.True(errors.Is(x.SetSlice(4, 4, big.NewInt(1)), ErrIndex))
	a.True(errors.Is(x.SetSlice(4, -1, big.NewInt(1)), ErrIndex))

	s := MustBounded(-1, -16, 16)
	a.NoError(s.SetSlice(2, 0, big.NewInt(0)))
	a.Equal(int64(-4), s.Int64())
}

func TestSetSliceFrom(t *testing.T) {
	a := assert.New(t)
	x := NewInt64(0x5)
	a.NoError(x.SetSliceFrom(2, big.NewInt(-1)))
	a.Equal(int64(-3), x.Int64()) // ...11101
	a.NoError(x.SetSliceFrom(0, big.NewInt(7)))
	a.Equal(int64(7), x.Int64())

	y := MustBounded(1, 0, 8)
	a.True(errors.Is(y.SetSliceFrom(3, big.NewInt(1)), ErrRange))
	a.Equal(int64(1), y.Int64())
	a.True(errors.Is(y.SetSliceFrom(-1, big.NewInt(1)), ErrIndex))
}

func TestSigned(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v, min, max int64
		signed      int64
	}{
		{3, 0, 8, 3},
		{4, 0, 8, -4},
		{7, 0, 8, -1},
		{12, 0, 16, -4},
		{6, -13, 7, 6},
		{-13, -13, 7, -13},
		{1, 0, 2, -1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			s, err := MustBounded(test.v, test.min, test.max).Signed()
			if a.NoError(err) {
				a.Equal(test.signed, s.Int64())
			}
		})
	}
	_, err := NewInt64(5).Signed()
	a.True(errors.Is(err, ErrDomain))
	_, err = MustBounded(0, 0, 1).Signed()
	a.True(errors.Is(err, ErrDomain))
}

func TestSignedOfSlice(t *testing.T) {
	a := assert.New(t)
	x := MustBounded(-13, -16, 16)
	s, err := x.Slice(3, 0)
	require.NoError(t, err)
	a.Equal(int64(3), s.Int64())
	v, err := s.Signed()
	require.NoError(t, err)
	a.Equal(int64(3), v.Int64())
	s, err = x.Slice(5, 0)
	require.NoError(t, err)
	v, err = s.Signed()
	require.NoError(t, err)
	a.Equal(int64(-13), v.Int64())
}

func TestBits(t *testing.T) {
	a := assert.New(t)
	bits, err := MustBounded(-6, -8, 8).Bits()
	require.NoError(t, err)
	a.Equal([]uint{1, 0, 1, 0}, bits)
	_, err = NewInt64(6).Bits()
	a.True(errors.Is(err, ErrDomain))
}

func TestFormat(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x     *IntBV
		s     string
		bin   string
		debug string
	}{
		{NewInt64(24), "24", "11000", "24"},
		{NewInt64(-13), "-13", "10011", "-13"},
		{MustBounded(6, -13, 7), "6", "00110", "6 [-13, 7) 5 bits"},
		{MustBounded(-1, -13, 7), "-1", "11111", "-1 [-13, 7) 5 bits"},
		{MustBounded(3, 0, 8), "3", "011", "3 [0, 8) 3 bits"},
		{&MustModBV(3, 0, 8).IntBV, "3", "011", "3 [0, 8) 3 bits wrap"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, test.x.String())
			a.Equal(test.bin, test.x.Bin())
			a.Equal(test.debug, test.x.GoString())
		})
	}
}

func TestParseIntBV(t *testing.T) {
	a := assert.New(t)
	x, err := ParseIntBV("0b0101")
	require.NoError(t, err)
	a.Equal(int64(5), x.Int64())
	a.Equal(4, x.Len())
	a.Equal("0101", x.Bin())

	x, err = ParseIntBV("-0x10")
	require.NoError(t, err)
	a.Equal(int64(-16), x.Int64())
	a.False(x.IsBounded())

	_, err = ParseIntBV("12z")
	a.EqualError(err, "parsing failed: unexpected symbol 'z' at pos 3")
	for _, kind := range []error{ErrRange, ErrIndex, ErrDomain, ErrPrecision, ErrExactDivision} {
		a.False(errors.Is(err, kind), "%v", kind)
	}
	a.Panics(func() {
		MustParseIntBV("")
	})
}
