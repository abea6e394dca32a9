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

func TestNewModBV(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v, min, max int64
		result      int64
		width       int
	}{
		{9, 0, 8, 1, 3},
		{8, 0, 8, 0, 3},
		{-1, 0, 8, 7, 3},
		{3, 0, 8, 3, 3},
		{7, -4, 4, -1, 3},
		{-5, -4, 4, 3, 3},
		{100, 10, 13, 10, 4},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, err := NewModBVInt64(test.v, test.min, test.max)
			if a.NoError(err) {
				a.Equal(test.result, x.Int64())
				a.Equal(test.width, x.Len())
				a.True(x.Wraps())
			}
		})
	}
	_, err := NewModBVInt64(0, 8, 8)
	a.True(errors.Is(err, ErrRange))
	_, err = NewModBV(big.NewInt(0), nil, big.NewInt(8))
	a.True(errors.Is(err, ErrDomain))
}

func TestModBVAssign(t *testing.T) {
	a := assert.New(t)
	x := MustModBV(0, 0, 8)
	a.NoError(x.SetInt64(9))
	a.Equal(int64(1), x.Int64())
	a.NoError(x.SetInt64(-9))
	a.Equal(int64(7), x.Int64())
	a.NoError(x.SetBit(3, 1)) // 15 -> 7
	a.Equal(int64(7), x.Int64())
	a.NoError(x.SetSlice(4, 1, big.NewInt(5))) // 1011 -> 3
	a.Equal(int64(3), x.Int64())
	a.True(errors.Is(x.SetBit(-1, 1), ErrIndex))
	a.True(errors.Is(x.SetSlice(1, 1, big.NewInt(0)), ErrIndex))
}

func TestModBVWrapProperties(t *testing.T) {
	a := assert.New(t)
	ranges := [][2]int64{{0, 8}, {-8, 8}, {-13, 7}, {3, 10}, {-10, -3}}
	for _, r := range ranges {
		x := MustModBV(r[0], r[0], r[1])
		span := r[1] - r[0]
		for v := int64(-40); v < 40; v++ {
			w := x.Wrap(big.NewInt(v)).Int64()
			a.True(w >= r[0] && w < r[1], "wrap(%d) = %d in [%d, %d)", v, w, r[0], r[1])
			a.Equal(int64(0), ((v-w)%span+span)%span)
			if v >= r[0] && v < r[1] {
				a.Equal(v, w)
			}
		}
		a.Equal(r[0], x.Int64())
	}
}

func TestModBVClone(t *testing.T) {
	a := assert.New(t)
	x := MustModBV(5, 0, 8)
	c := x.Clone()
	a.NoError(c.SetInt64(10))
	a.Equal(int64(2), c.Int64())
	a.Equal(int64(5), x.Int64())
	a.True(c.Wraps())
}

func TestModUnsigned(t *testing.T) {
	a := assert.New(t)
	x, err := NewModUnsigned(big.NewInt(-1), 4)
	require.NoError(t, err)
	a.Equal(int64(15), x.Int64())
	a.Equal(4, x.Len())
	sum := x.Add(NewInt64(1))
	a.Equal(int64(16), sum.Int64())
	a.NoError(x.Set(sum.Int()))
	a.Equal(int64(0), x.Int64())
}
