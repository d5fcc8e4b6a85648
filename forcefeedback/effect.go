// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package forcefeedback

// EffectParameter is the closed set of parameter block variants a slot's
// Param1/Param2 may hold. The set is closed by construction (only the six
// concrete types below implement it) — do not add an open-ended registry.
type EffectParameter interface {
	isEffectParameter()
}

// EnvelopeParam wraps a SetEnvelope as an EffectParameter variant.
type EnvelopeParam struct{ SetEnvelope }

// ConditionParam wraps a SetCondition as an EffectParameter variant.
type ConditionParam struct{ SetCondition }

// PeriodicParam wraps a SetPeriodic as an EffectParameter variant.
type PeriodicParam struct{ SetPeriodic }

// ConstantForceParam wraps a SetConstantForce as an EffectParameter variant.
type ConstantForceParam struct{ SetConstantForce }

// RampForceParam wraps a SetRampForce as an EffectParameter variant.
type RampForceParam struct{ SetRampForce }

// CustomForceParam wraps a SetCustomForce as an EffectParameter variant.
type CustomForceParam struct{ SetCustomForce }

func (EnvelopeParam) isEffectParameter()      {}
func (ConditionParam) isEffectParameter()     {}
func (PeriodicParam) isEffectParameter()      {}
func (ConstantForceParam) isEffectParameter() {}
func (RampForceParam) isEffectParameter()     {}
func (CustomForceParam) isEffectParameter()   {}

// Slot is one effect slot: the common descriptor plus up to two typed
// parameter variants, per §3.
type Slot struct {
	Descriptor *EffectDescriptor
	Param1     EffectParameter
	Param2     EffectParameter
}

// IsComplete reports whether the slot carries everything its effect type
// requires: a descriptor, and (for CustomForceData) Param1, otherwise both
// Param1 and Param2.
func (s *Slot) IsComplete() bool {
	if s.Descriptor == nil {
		return false
	}
	if s.Descriptor.EffectType == CustomForceData {
		return s.Param1 != nil
	}
	return s.Param1 != nil && s.Param2 != nil
}
