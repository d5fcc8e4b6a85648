// Force synthesis kernels
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package forcefeedback

import "math"

// Compute is the top-level kernel mapping (effect, t, position, velocity,
// acceleration) to a scalar force in [-1, 1], per §4.F. t is the effect's
// elapsed time in milliseconds since it started running.
func Compute(slot *Slot, t uint32, position, velocity, acceleration float64) float64 {
	return clamp(computeRaw(slot, t, position, velocity, acceleration), -1, 1)
}

func computeRaw(slot *Slot, t uint32, position, velocity, acceleration float64) float64 {
	if slot == nil || slot.Descriptor == nil {
		return 0
	}

	e := slot.Descriptor
	if e.DurationSet && t > uint32(e.Duration) {
		return 0
	}

	switch p1 := slot.Param1.(type) {
	case ConstantForceParam:
		return constantFFB(e, &p1.SetConstantForce, envelopeOf(slot.Param2), t)
	case RampForceParam:
		return rampFFB(e, &p1.SetRampForce, envelopeOf(slot.Param2), t)
	case PeriodicParam:
		return periodicFFB(e, &p1.SetPeriodic, envelopeOf(slot.Param2), t)
	case CustomForceParam:
		return 0
	case ConditionParam:
		switch e.EffectType {
		case Spring:
			return conditionFFB(e, &p1.SetCondition, position)
		case Damper:
			return conditionFFB(e, &p1.SetCondition, velocity)
		case Inertia:
			return conditionFFB(e, &p1.SetCondition, acceleration)
		case Friction:
			return 0
		default:
			return 0
		}
	default:
		return 0
	}
}

func envelopeOf(param EffectParameter) *SetEnvelope {
	if env, ok := param.(EnvelopeParam); ok {
		return &env.SetEnvelope
	}
	return nil
}

func q(v int16) float64 {
	return float64(v) / ForceLogicalMax
}

// envelope computes the attack/fade amplitude shaping of §4.F, returning a
// value in [0, 1]. duration is nil for an infinite-duration effect.
func envelope(env *SetEnvelope, t uint32, duration *uint32) float64 {
	if env == nil {
		return 1
	}

	result := 1.0

	if t < env.AttackTime {
		attackLevel := q(env.AttackLevel)
		fade := attackLevel + (1-attackLevel)*(float64(t)/float64(env.AttackTime))
		result = math.Min(result, fade)
	}

	if duration != nil {
		d := *duration
		if t <= d && t+env.FadeTime > d {
			fadeLevel := q(env.FadeLevel)
			fade := fadeLevel + (1-fadeLevel)*(float64(d-t)/float64(env.FadeTime))
			result = math.Min(result, fade)
		}
	}

	return clamp(result, 0, 1)
}

func durationOf(e *EffectDescriptor) *uint32 {
	if !e.DurationSet {
		return nil
	}
	d := uint32(e.Duration)
	return &d
}

func conditionForce(metric float64, c *SetCondition) float64 {
	offset := q(c.CPOffset)
	deadBand := q(c.DeadBand)
	posSat := q(c.PositiveSaturation)
	negSat := q(c.NegativeSaturation)

	var raw float64
	switch {
	case metric < offset-deadBand:
		raw = -q(c.NegativeCoefficient) * (metric - (offset - deadBand))
	case metric > offset+deadBand:
		raw = -q(c.PositiveCoefficient) * (metric - (offset + deadBand))
	default:
		raw = 0
	}

	return clamp(raw, -negSat, posSat)
}

func constantFFB(e *EffectDescriptor, cf *SetConstantForce, env *SetEnvelope, t uint32) float64 {
	magnitude := q(cf.Magnitude)
	return magnitude * envelope(env, t, durationOf(e)) * q(e.Gain)
}

func rampFFB(e *EffectDescriptor, rf *SetRampForce, env *SetEnvelope, t uint32) float64 {
	if !e.DurationSet {
		return 0
	}

	start := q(rf.RampStart)
	end := q(rf.RampEnd)
	force := start + (end-start)*(float64(t)/float64(e.Duration))

	return force * envelope(env, t, durationOf(e)) * q(e.Gain)
}

func conditionFFB(e *EffectDescriptor, c *SetCondition, metric float64) float64 {
	return conditionForce(metric, c) * q(e.Gain)
}

func periodicFFB(e *EffectDescriptor, p *SetPeriodic, env *SetEnvelope, t uint32) float64 {
	var wave func(float64) float64
	switch e.EffectType {
	case Square:
		wave = squareFn
	case Sine:
		wave = sineFn
	case Triangle:
		wave = triangleFn
	case SawtoothUp:
		wave = sawtoothUpFn
	case SawtoothDown:
		wave = sawtoothDownFn
	default:
		wave = func(float64) float64 { return 0 }
	}

	if p.Period == 0 {
		return 0
	}

	effectTime := uint64(t) + (uint64(p.Phase)*uint64(p.Period))/36_000
	u := float64(effectTime%uint64(p.Period)) / float64(p.Period)

	force := q(p.Magnitude) * wave(u)

	return force * envelope(env, t, durationOf(e)) * q(e.Gain)
}

func squareFn(u float64) float64 {
	if u >= 0.5 {
		return 1
	}
	return -1
}

// sinLUT holds sin(k*pi/(2*64))*32767 truncated to an integer (floor) for
// k = 0..64, reproduced exactly from the reference implementation.
var sinLUT = [65]int16{
	0, 804, 1607, 2410, 3211, 4011, 4807, 5601, 6392, 7179, 7961, 8739, 9511, 10278, 11038,
	11792, 12539, 13278, 14009, 14732, 15446, 16150, 16845, 17530, 18204, 18867, 19519, 20159,
	20787, 21402, 22004, 22594, 23169, 23731, 24278, 24811, 25329, 25831, 26318, 26789, 27244,
	27683, 28105, 28510, 28897, 29268, 29621, 29955, 30272, 30571, 30851, 31113, 31356, 31580,
	31785, 31970, 32137, 32284, 32412, 32520, 32609, 32678, 32727, 32757, 32767,
}

const lutSamples = 64

func sineFn(u float64) float64 {
	var forceI16 int16

	switch quadrant := uint8(u * 4); quadrant {
	case 0:
		forceI16 = sinLUT[lutIndex((u-0.0)*4*lutSamples)]
	case 1:
		forceI16 = sinLUT[lutIndex((0.5-u)*4*lutSamples)]
	case 2:
		forceI16 = -sinLUT[lutIndex((u-0.5)*4*lutSamples)]
	default:
		forceI16 = -sinLUT[lutIndex((1.0-u)*4*lutSamples)]
	}

	return float64(forceI16) / 32767
}

// lutIndex clamps a computed LUT index into [0, 64], guarding against float
// rounding drift at quadrant boundaries.
func lutIndex(v float64) int {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i > lutSamples {
		return lutSamples
	}
	return i
}

func triangleFn(u float64) float64 {
	if u < 0.5 {
		return 2*(2*u) - 1
	}
	return 2*(2*(1-u)) - 1
}

func sawtoothUpFn(u float64) float64 {
	return 2*u - 1
}

func sawtoothDownFn(u float64) float64 {
	return -sawtoothUpFn(u)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
