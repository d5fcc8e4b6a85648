// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package racingwheel

import (
	"testing"

	"github.com/usbarmory/racingwheel/config"
	"github.com/usbarmory/racingwheel/forcefeedback"
)

func TestForceInBounds(t *testing.T) {
	w := New(config.Default())
	w.SetSteering(450)
	w.Advance(16)

	f := w.Force()
	if f < -1 || f > 1 {
		t.Errorf("force() = %v, want within [-1, 1]", f)
	}
}

func TestForceAfterResetIsSpringOnly(t *testing.T) {
	cfg := config.Default()
	w := New(cfg)
	w.SetSteering(225) // quarter of max_rotation, off-center

	before := w.Force()

	if err := w.HandleOutput(forcefeedback.IDPIDDeviceControl.ID,
		forcefeedback.EncodePIDDeviceControl(forcefeedback.PIDDeviceControl{DeviceControl: forcefeedback.DeviceReset})); err != nil {
		t.Fatalf("DeviceReset rejected: %v", err)
	}

	if w.DeviceGain() != 0 {
		t.Errorf("device gain after reset = %v, want 0", w.DeviceGain())
	}
	if w.pool.Available() != w.pool.PoolSize() {
		t.Error("pool not empty after reset")
	}

	w.SetSteering(225)
	after := w.Force()
	if after != before {
		t.Errorf("force after reset = %v, want unchanged built-in spring-only force %v", after, before)
	}
}

func TestCreateStartStopFreeLifecycle(t *testing.T) {
	w := New(config.Default())

	if err := w.HandleFeatureOut(forcefeedback.IDCreateNewEffect.ID,
		forcefeedback.EncodeCreateNewEffect(forcefeedback.CreateNewEffect{EffectType: forcefeedback.Spring})); err != nil {
		t.Fatalf("CreateNewEffect rejected: %v", err)
	}

	load, ok := w.HandleFeatureIn(forcefeedback.IDPIDBlockLoad.ID)
	if !ok {
		t.Fatal("PIDBlockLoad GET not handled")
	}
	if load[1] != 1 || forcefeedback.BlockLoadStatus(load[2]) != forcefeedback.Success {
		t.Fatalf("PIDBlockLoad = %v, want {index=1, Success}", load)
	}

	descWire := forcefeedback.EncodeSetEffect(1, forcefeedback.EffectDescriptor{
		EffectType: forcefeedback.Spring,
		Gain:       forcefeedback.ForceLogicalMax,
	})
	if err := w.HandleOutput(forcefeedback.IDSetEffect.ID, descWire); err != nil {
		t.Fatalf("SetEffect rejected: %v", err)
	}

	cond0 := forcefeedback.SetCondition{ParameterBlockOffset: 0, PositiveCoefficient: 5000, NegativeCoefficient: 5000, PositiveSaturation: 10000, NegativeSaturation: 10000}
	if err := w.HandleOutput(forcefeedback.IDSetCondition.ID, forcefeedback.EncodeSetCondition(1, cond0)); err != nil {
		t.Fatalf("SetCondition (block 0) rejected: %v", err)
	}
	cond1 := cond0
	cond1.ParameterBlockOffset = 1
	if err := w.HandleOutput(forcefeedback.IDSetCondition.ID, forcefeedback.EncodeSetCondition(1, cond1)); err != nil {
		t.Fatalf("SetCondition (block 1) rejected: %v", err)
	}

	// Device gain starts at 0 (which zeroes Force()), so set it to full
	// scale as a host does before playing effects.
	if err := w.HandleOutput(forcefeedback.IDDeviceGain.ID,
		forcefeedback.EncodeDeviceGain(forcefeedback.DeviceGain{DeviceGain: forcefeedback.ForceLogicalMax})); err != nil {
		t.Fatalf("DeviceGain rejected: %v", err)
	}

	w.SetSteering(225)
	withoutSpring := w.Force()

	if err := w.HandleOutput(forcefeedback.IDSetEffectOperation.ID,
		forcefeedback.EncodeSetEffectOperation(1, forcefeedback.SetEffectOperation{EffectOperation: forcefeedback.EffectStart})); err != nil {
		t.Fatalf("EffectStart rejected: %v", err)
	}
	if w.running.Len() != 1 {
		t.Fatalf("running set len = %d, want 1", w.running.Len())
	}

	withSpring := w.Force()
	if withSpring == withoutSpring {
		t.Error("force unchanged after starting a second spring effect")
	}

	if err := w.HandleOutput(forcefeedback.IDSetEffectOperation.ID,
		forcefeedback.EncodeSetEffectOperation(1, forcefeedback.SetEffectOperation{EffectOperation: forcefeedback.EffectStop})); err != nil {
		t.Fatalf("EffectStop rejected: %v", err)
	}
	if w.running.Len() != 0 {
		t.Error("running set not empty after EffectStop")
	}

	w.HandleOutput(forcefeedback.IDPIDBlockFree.ID, forcefeedback.EncodePIDBlockFree(1))
	if w.pool.GetEffect(1) != nil {
		t.Error("slot 1 still allocated after PIDBlockFree")
	}
}

func TestEffectStartSolo(t *testing.T) {
	w := New(config.Default())

	for i := uint8(1); i <= 3; i++ {
		w.HandleFeatureOut(forcefeedback.IDCreateNewEffect.ID,
			forcefeedback.EncodeCreateNewEffect(forcefeedback.CreateNewEffect{EffectType: forcefeedback.ConstantForce}))
		w.HandleFeatureIn(forcefeedback.IDPIDBlockLoad.ID)
		w.HandleOutput(forcefeedback.IDSetEffect.ID, forcefeedback.EncodeSetEffect(i, forcefeedback.EffectDescriptor{EffectType: forcefeedback.ConstantForce}))
		w.HandleOutput(forcefeedback.IDSetConstantForce.ID, forcefeedback.EncodeSetConstantForce(i, forcefeedback.SetConstantForce{}))
	}

	w.HandleOutput(forcefeedback.IDSetEffectOperation.ID, forcefeedback.EncodeSetEffectOperation(1, forcefeedback.SetEffectOperation{EffectOperation: forcefeedback.EffectStart}))
	w.HandleOutput(forcefeedback.IDSetEffectOperation.ID, forcefeedback.EncodeSetEffectOperation(2, forcefeedback.SetEffectOperation{EffectOperation: forcefeedback.EffectStart}))

	if w.running.Len() != 2 {
		t.Fatalf("running set len = %d, want 2", w.running.Len())
	}

	w.HandleOutput(forcefeedback.IDSetEffectOperation.ID, forcefeedback.EncodeSetEffectOperation(3, forcefeedback.SetEffectOperation{EffectOperation: forcefeedback.EffectStartSolo}))

	if w.running.Len() != 1 {
		t.Fatalf("running set len after solo start = %d, want 1", w.running.Len())
	}
	present := false
	w.running.Each(func(index uint8, _ uint32) {
		if index == 3 {
			present = true
		}
	})
	if !present {
		t.Error("effect 3 not running after solo start")
	}
}

func TestPoolFullReturnsFullStatus(t *testing.T) {
	w := New(config.Default())

	for i := 0; i < MaxEffects; i++ {
		w.HandleFeatureOut(forcefeedback.IDCreateNewEffect.ID,
			forcefeedback.EncodeCreateNewEffect(forcefeedback.CreateNewEffect{EffectType: forcefeedback.ConstantForce}))
		load, _ := w.HandleFeatureIn(forcefeedback.IDPIDBlockLoad.ID)
		if forcefeedback.BlockLoadStatus(load[2]) != forcefeedback.Success {
			t.Fatalf("allocation %d failed: %v", i, load)
		}
	}

	w.HandleFeatureOut(forcefeedback.IDCreateNewEffect.ID,
		forcefeedback.EncodeCreateNewEffect(forcefeedback.CreateNewEffect{EffectType: forcefeedback.ConstantForce}))
	load, _ := w.HandleFeatureIn(forcefeedback.IDPIDBlockLoad.ID)
	if forcefeedback.BlockLoadStatus(load[2]) != forcefeedback.Full {
		t.Errorf("block load status = %v, want Full", load[2])
	}
	if load[1] != 0 {
		t.Errorf("block load index on full = %d, want 0", load[1])
	}
}

func TestBlockLoadWithoutPendingCreateIsError(t *testing.T) {
	w := New(config.Default())

	load, ok := w.HandleFeatureIn(forcefeedback.IDPIDBlockLoad.ID)
	if !ok {
		t.Fatal("PIDBlockLoad GET not handled")
	}
	if forcefeedback.BlockLoadStatus(load[2]) != forcefeedback.Error {
		t.Errorf("block load status = %v, want Error", load[2])
	}
}

func TestAdvancePrunesIncompleteEffectAfterTimeout(t *testing.T) {
	w := New(config.Default())

	w.HandleFeatureOut(forcefeedback.IDCreateNewEffect.ID,
		forcefeedback.EncodeCreateNewEffect(forcefeedback.CreateNewEffect{EffectType: forcefeedback.Spring}))
	w.HandleFeatureIn(forcefeedback.IDPIDBlockLoad.ID)
	w.HandleOutput(forcefeedback.IDSetEffect.ID, forcefeedback.EncodeSetEffect(1, forcefeedback.EffectDescriptor{EffectType: forcefeedback.Spring}))
	// Deliberately incomplete: only param_1, no param_2.
	w.HandleOutput(forcefeedback.IDSetCondition.ID, forcefeedback.EncodeSetCondition(1, forcefeedback.SetCondition{}))
	w.HandleOutput(forcefeedback.IDSetEffectOperation.ID, forcefeedback.EncodeSetEffectOperation(1, forcefeedback.SetEffectOperation{EffectOperation: forcefeedback.EffectStart}))

	w.Advance(10_001)

	if w.running.Len() != 0 {
		t.Error("incomplete effect not pruned after exceeding the 10s timeout")
	}
}

func TestDeviceGainClampedByForceLogicalMax(t *testing.T) {
	w := New(config.Default())
	w.HandleOutput(forcefeedback.IDDeviceGain.ID, forcefeedback.EncodeDeviceGain(forcefeedback.DeviceGain{DeviceGain: forcefeedback.ForceLogicalMax}))
	if w.DeviceGain() != 1 {
		t.Errorf("device gain = %v, want 1", w.DeviceGain())
	}
}
