// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fixed

import "testing"

const denom = 10_000

func TestFromFloatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.5, -0.5, 0.3281} {
		f := FromFloat(denom, v)
		got := f.Float()

		if diff := got - v; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("FromFloat(%v).Float() = %v, want ~%v", v, got, v)
		}
	}
}

func TestMulSaturatesOnOverflow(t *testing.T) {
	big := New16(1, 30000)
	got := big.Mul(big)

	if got.Value() != 0 {
		t.Errorf("Mul overflow = %d, want 0 (saturated default)", got.Value())
	}
}

func TestAddSaturates(t *testing.T) {
	a := New16(denom, 32000)
	b := New16(denom, 32000)

	got := a.Add(b)
	if got.Value() != 0 {
		t.Errorf("Add overflow = %d, want 0", got.Value())
	}
}

func TestDivByZero(t *testing.T) {
	a := New16(denom, 5000)
	zero := New16(denom, 0)

	if got := a.Div(zero).Value(); got != 0 {
		t.Errorf("Div by zero = %d, want 0", got)
	}
}

func TestToFrac(t *testing.T) {
	f := New16(denom, 5000) // 0.5
	frac := f.ToFrac(1000)

	if frac.Num != 500 || frac.Denom != 1000 {
		t.Errorf("ToFrac = %d/%d, want 500/1000", frac.Num, frac.Denom)
	}
}

func TestOne(t *testing.T) {
	f := New16(denom, 0)
	one := f.One()

	if one.Value() != denom {
		t.Errorf("One() = %d, want %d", one.Value(), denom)
	}
}
