// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mathutil contains two's complement helpers shared by the value types.
// All functions treat *big.Int operands as infinitely sign-extended bit strings
// and never modify their arguments.
package mathutil

import (
	"fmt"
	"math/big"
	"unsafe"
)

var (
	bigOne = big.NewInt(1)
)

// RoundMode defines how a rational number is mapped to an integer.
type RoundMode int

const (
	// RoundHalfAway rounds to the nearest integer, ties away from zero.
	RoundHalfAway RoundMode = iota
	// RoundHalfToZero rounds to the nearest integer, ties toward zero.
	RoundHalfToZero
	// RoundHalfEven rounds to the nearest integer, ties to the even neighbour.
	RoundHalfEven
	// RoundFloor rounds toward negative infinity.
	RoundFloor
	// RoundCeil rounds toward positive infinity.
	RoundCeil
)

// Pow2 returns 2^n. n must be >= 0.
func Pow2(n int) *big.Int {
	return new(big.Int).Lsh(bigOne, uint(n))
}

// Mask returns 2^n - 1.
func Mask(n int) *big.Int {
	return new(big.Int).Sub(Pow2(n), bigOne)
}

// TwosWidth returns the minimal number of bits needed to hold v
// as a two's complement number, including the sign bit.
func TwosWidth(v *big.Int) int {
	if v.Sign() >= 0 {
		return v.BitLen() + 1
	}
	t := new(big.Int).Neg(v)
	return t.Sub(t, bigOne).BitLen() + 1
}

// RangeWidth returns the number of bits needed to represent every value in [min, max).
// If min >= 0, the range is unsigned and no sign bit is reserved.
// The caller guarantees that min < max.
func RangeWidth(min, max *big.Int) int {
	top := new(big.Int).Sub(max, bigOne)
	if min.Sign() >= 0 {
		return top.BitLen()
	}
	w := TwosWidth(min)
	if tw := TwosWidth(top); tw > w {
		w = tw
	}
	return w
}

// InRange returns true if min <= v < max.
func InRange(v, min, max *big.Int) bool {
	return v.Cmp(min) >= 0 && v.Cmp(max) < 0
}

// Wrap returns (v - min) mod (max - min) + min.
func Wrap(v, min, max *big.Int) *big.Int {
	span := new(big.Int).Sub(max, min)
	r := new(big.Int).Sub(v, min)
	r.Mod(r, span) // Euclidean modulus, span > 0, so r >= 0.
	return r.Add(r, min)
}

// Extract returns bits [low, low+n) of v as a non-negative number.
func Extract(v *big.Int, low, n int) *big.Int {
	r := new(big.Int).Rsh(v, uint(low))
	return r.And(r, Mask(n))
}

// Deposit returns v with bits [low, low+n) replaced by the low n bits of bits.
func Deposit(v *big.Int, low, n int, bits *big.Int) *big.Int {
	mask := Mask(n)
	field := new(big.Int).And(bits, mask)
	field.Lsh(field, uint(low))
	r := new(big.Int).AndNot(v, mask.Lsh(mask, uint(low)))
	return r.Or(r, field)
}

// SignExtend interprets the low n bits of v as a two's complement number.
func SignExtend(v *big.Int, n int) *big.Int {
	r := Extract(v, 0, n)
	if n > 0 && r.Bit(n-1) == 1 {
		r.Sub(r, Pow2(n))
	}
	return r
}

// FloorDivMod returns such q and r, that x = q*y + r, and r has the sign of y.
// y must not be zero.
func FloorDivMod(x, y *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, bigOne)
		r.Add(r, y)
	}
	return q, r
}

// QuoRound returns num/den rounded according to mode, and true if no rounding occurred.
// den must be positive. Panics on an unknown mode.
func QuoRound(num, den *big.Int, mode RoundMode) (q *big.Int, exact bool) {
	if mode < RoundHalfAway || mode > RoundCeil {
		panic(fmt.Sprintf("unknown round mode %d", mode))
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() == 0 {
		return q, true
	}
	sign := num.Sign()
	away := false
	switch mode {
	case RoundFloor:
		away = sign < 0
	case RoundCeil:
		away = sign > 0
	default:
		twice := r.Abs(r)
		twice.Lsh(twice, 1)
		switch c := twice.Cmp(den); {
		case c > 0:
			away = true
		case c == 0:
			switch mode {
			case RoundHalfAway:
				away = true
			case RoundHalfEven:
				away = q.Bit(0) == 1
			}
		}
	}
	if away {
		q.Add(q, big.NewInt(int64(sign)))
	}
	return q, false
}

// RoundRat rounds r to an integer according to mode.
func RoundRat(r *big.Rat, mode RoundMode) (q *big.Int, exact bool) {
	return QuoRound(r.Num(), r.Denom(), mode)
}

// ShiftRound returns v / 2^n rounded according to mode. n must be >= 0.
func ShiftRound(v *big.Int, n int, mode RoundMode) (q *big.Int, exact bool) {
	if n == 0 {
		return new(big.Int).Set(v), true
	}
	return QuoRound(v, Pow2(n), mode)
}

// Log2Exact returns k if d == 2^k.
func Log2Exact(d *big.Int) (k int, ok bool) {
	if d.Sign() <= 0 {
		return 0, false
	}
	k = d.BitLen() - 1
	return k, int(d.TrailingZeroBits()) == k
}

// ScaleRat returns r * 2^shift.
func ScaleRat(r *big.Rat, shift int) *big.Rat {
	p := new(big.Rat).SetInt(Pow2(AbsInt(shift)))
	if shift >= 0 {
		return new(big.Rat).Mul(r, p)
	}
	return new(big.Rat).Quo(r, p)
}

// AbsInt returns |val|.
func AbsInt(val int) int {
	mask := val >> (unsafe.Sizeof(int(0))*8 - 1)
	return (val + mask) ^ mask
}

// MinInt returns the smallest of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
