// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package forcefeedback

import (
	"math"
	"testing"
)

func TestSquareWaveform(t *testing.T) {
	if squareFn(0) != -1 {
		t.Errorf("square(0) = %v, want -1", squareFn(0))
	}
	if squareFn(0.4999) != -1 {
		t.Errorf("square(0.4999) = %v, want -1", squareFn(0.4999))
	}
	if squareFn(0.5) != 1 {
		t.Errorf("square(0.5) = %v, want 1", squareFn(0.5))
	}
	if squareFn(0.9999) != 1 {
		t.Errorf("square(0.9999) = %v, want 1", squareFn(0.9999))
	}
}

func TestTriangleWaveform(t *testing.T) {
	cases := map[float64]float64{0: -1, 0.5: 1, 0.999999: -1}
	for u, want := range cases {
		if got := triangleFn(u); math.Abs(got-want) > 1e-3 {
			t.Errorf("triangle(%v) = %v, want ~%v", u, got, want)
		}
	}
}

func TestSawtooth(t *testing.T) {
	if got := sawtoothUpFn(0); got != -1 {
		t.Errorf("sawtoothUp(0) = %v, want -1", got)
	}
	if got := sawtoothUpFn(0.999); math.Abs(got-0.998) > 1e-3 {
		t.Errorf("sawtoothUp(0.999) = %v, want ~0.998", got)
	}
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
		up := sawtoothUpFn(u)
		down := sawtoothDownFn(u)
		if up != -down {
			t.Errorf("sawtoothDown(%v) = %v, want %v", u, down, -up)
		}
	}
}

func TestSineAgainstMathSin(t *testing.T) {
	for i := 0; i <= 256; i++ {
		u := float64(i) / 256
		got := sineFn(u)
		want := math.Sin(2 * math.Pi * u)
		if diff := math.Abs(got - want); diff > 1.0/64 {
			t.Errorf("sine(%v) = %v, want ~%v (diff %v)", u, got, want, diff)
		}
	}
}

func TestSineAtLUTGridPoints(t *testing.T) {
	for k := 0; k <= 64; k++ {
		u := float64(k) / 256 // quadrant 0, grid-aligned
		got := sineFn(u)
		want := math.Sin(2 * math.Pi * u)
		if diff := math.Abs(got - want); diff > 1.0/32767+1e-6 {
			t.Errorf("sine(%v) = %v, want ~%v (diff %v)", u, got, want, diff)
		}
	}
}

func TestEnvelopeBounds(t *testing.T) {
	env := &SetEnvelope{AttackLevel: 2000, FadeLevel: 1000, AttackTime: 100, FadeTime: 50}
	duration := uint32(200)

	prev := -1.0
	for t_ := uint32(0); t_ <= 100; t_ += 10 {
		v := envelope(env, t_, &duration)
		if v < 0 || v > 1 {
			t.Fatalf("envelope(%d) = %v, out of [0,1]", t_, v)
		}
		if v < prev {
			t.Errorf("envelope not monotone nondecreasing on attack at t=%d: %v < %v", t_, v, prev)
		}
		prev = v
	}
}

func TestComputeConstantDurationExpiry(t *testing.T) {
	slot := &Slot{
		Descriptor: &EffectDescriptor{EffectType: ConstantForce, Duration: 100, DurationSet: true, Gain: ForceLogicalMax},
		Param1:     ConstantForceParam{SetConstantForce{Magnitude: ForceLogicalMax}},
	}

	if f := Compute(slot, 99, 0, 0, 0); math.Abs(f-1) > 1e-6 {
		t.Errorf("force at t=99 = %v, want ~1", f)
	}
	if f := Compute(slot, 101, 0, 0, 0); f != 0 {
		t.Errorf("force at t=101 = %v, want 0", f)
	}
}

func TestComputeSpringCenter(t *testing.T) {
	slot := &Slot{
		Descriptor: &EffectDescriptor{EffectType: Spring, Gain: ForceLogicalMax},
		Param1: ConditionParam{SetCondition{
			PositiveCoefficient: ForceLogicalMax,
			NegativeCoefficient: ForceLogicalMax,
			PositiveSaturation:  ForceLogicalMax,
			NegativeSaturation:  ForceLogicalMax,
		}},
	}

	if f := Compute(slot, 0, 0, 0, 0); f != 0 {
		t.Errorf("spring at center = %v, want 0", f)
	}

	if f := Compute(slot, 0, 0.5, 0, 0); math.Abs(f-(-0.5)) > 1e-6 {
		t.Errorf("spring at 0.5 = %v, want -0.5", f)
	}

	if f := Compute(slot, 0, -0.5, 0, 0); math.Abs(f-0.5) > 1e-6 {
		t.Errorf("spring at -0.5 = %v, want 0.5", f)
	}
}

func TestComputeSpringSaturation(t *testing.T) {
	slot := &Slot{
		Descriptor: &EffectDescriptor{EffectType: Spring, Gain: ForceLogicalMax},
		Param1: ConditionParam{SetCondition{
			PositiveCoefficient: 3 * ForceLogicalMax,
			NegativeCoefficient: 3 * ForceLogicalMax,
			PositiveSaturation:  ForceLogicalMax / 2,
			NegativeSaturation:  ForceLogicalMax / 2,
		}},
	}

	if f := Compute(slot, 0, 0.2, 0, 0); math.Abs(f-(-0.5)) > 1e-6 {
		t.Errorf("spring saturation = %v, want -0.5", f)
	}
}

func TestComputePeriodicPhase(t *testing.T) {
	slot := &Slot{
		Descriptor: &EffectDescriptor{EffectType: Sine, Gain: ForceLogicalMax},
		Param1: PeriodicParam{SetPeriodic{
			Magnitude: ForceLogicalMax,
			Phase:     9000, // 90 degrees
			Period:    1000,
		}},
	}

	f := Compute(slot, 0, 0, 0, 0)
	if math.Abs(f-1) > 1e-3 {
		t.Errorf("sine at 90deg phase, t=0 = %v, want ~1", f)
	}
}

func TestComputeFrictionIsZero(t *testing.T) {
	slot := &Slot{
		Descriptor: &EffectDescriptor{EffectType: Friction, Gain: ForceLogicalMax},
		Param1:     ConditionParam{SetCondition{PositiveSaturation: ForceLogicalMax, NegativeSaturation: ForceLogicalMax}},
	}
	if f := Compute(slot, 0, 1, 1, 1); f != 0 {
		t.Errorf("friction = %v, want 0 (not modeled)", f)
	}
}

func TestComputeCustomForceIsZero(t *testing.T) {
	slot := &Slot{
		Descriptor: &EffectDescriptor{EffectType: CustomForceData},
		Param1:     CustomForceParam{SetCustomForce{SampleCount: 4}},
	}
	if f := Compute(slot, 0, 0, 0, 0); f != 0 {
		t.Errorf("custom force = %v, want 0", f)
	}
}

func TestComputeIncompleteSlotIsZero(t *testing.T) {
	if f := Compute(&Slot{}, 0, 0, 0, 0); f != 0 {
		t.Errorf("empty slot force = %v, want 0", f)
	}
}
