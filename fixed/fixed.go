// Fixed-point arithmetic for the racing wheel force feedback core
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fixed implements signed 16-bit fixed-point ("Q-format") scalars
// and numerator/denominator fractions, as consumed by the racing wheel
// force feedback wire formats and kernels.
//
// A value's unit magnitude equals its denominator N: the logical range
// [-1, +1] is represented as [-N, +N]. Multiplication and division widen to
// 64 bits and narrow back with saturation to the zero value on overflow;
// overflow is treated as an implementation-policy bug, not a recoverable
// error, matching the source this package is ported from.
package fixed

// F16 is a signed 16-bit fixed-point scalar with denominator Denom.
type F16 struct {
	Denom int64
	val   int16
}

// New16 constructs an F16 with the given denominator and raw value.
func New16(denom int64, val int16) F16 {
	return F16{Denom: denom, val: val}
}

// Value returns the raw int16 representation.
func (f F16) Value() int16 {
	return f.val
}

// One returns the value representing the logical unit 1.0 for this
// fixed-point's denominator, saturating to 0 if the denominator does not
// fit in int16 (a configuration bug, never true for the denominators this
// system uses).
func (f F16) One() F16 {
	return New16(f.Denom, saturate16(f.Denom))
}

// Float returns the logical floating point value. Used only at package
// boundaries (kernels, telemetry) — never inside the fixed-point codecs
// themselves.
func (f F16) Float() float64 {
	if f.Denom == 0 {
		return 0
	}
	return float64(f.val) / float64(f.Denom)
}

// FromFloat constructs an F16 from a logical floating point value,
// saturating on overflow.
func FromFloat(denom int64, v float64) F16 {
	return New16(denom, saturate16(int64(v*float64(denom))))
}

// Add returns f + rhs. Both operands must share a denominator.
func (f F16) Add(rhs F16) F16 {
	return New16(f.Denom, saturateAdd16(f.val, rhs.val))
}

// Sub returns f - rhs. Both operands must share a denominator.
func (f F16) Sub(rhs F16) F16 {
	return New16(f.Denom, saturateAdd16(f.val, -rhs.val))
}

// Neg returns -f.
func (f F16) Neg() F16 {
	return New16(f.Denom, -f.val)
}

// Mul returns f * rhs, widening to 64 bits before narrowing back with
// saturation, per §4.A.
func (f F16) Mul(rhs F16) F16 {
	v := (int64(f.val) * int64(rhs.val)) / f.Denom
	return New16(f.Denom, saturate16(v))
}

// Div returns f / rhs, widening to 64 bits before narrowing back with
// saturation.
func (f F16) Div(rhs F16) F16 {
	if rhs.val == 0 {
		return New16(f.Denom, 0)
	}
	v := (int64(f.val) * f.Denom) / int64(rhs.val)
	return New16(f.Denom, saturate16(v))
}

// ToFrac returns the (num, denom) fraction equal to f scaled to the given
// denominator: num = val*denom/N.
func (f F16) ToFrac(denom int64) Frac {
	v := (int64(f.val) * denom) / f.Denom
	return Frac{Num: saturate16(v), Denom: denom}
}

// MulFrac multiplies f by a fraction without overflow: f*num/denom.
func (f F16) MulFrac(frac Frac) F16 {
	v := (int64(f.val) * int64(frac.Num)) / frac.Denom
	return New16(f.Denom, saturate16(v))
}

// Frac is a numerator/denominator pair, as used by sample-period and
// phase/period ratios in the periodic waveform kernel.
type Frac struct {
	Num   int16
	Denom int64
}

// Float returns the logical floating point value of the fraction.
func (fr Frac) Float() float64 {
	if fr.Denom == 0 {
		return 0
	}
	return float64(fr.Num) / float64(fr.Denom)
}

// saturate16 narrows a widened 64-bit value to int16, returning the zero
// value (the type's default) on overflow — callers must not rely on
// wrap-around, per §4.A.
func saturate16(v int64) int16 {
	if v > 32767 || v < -32768 {
		return 0
	}
	return int16(v)
}

func saturateAdd16(a, b int16) int16 {
	return saturate16(int64(a) + int64(b))
}
