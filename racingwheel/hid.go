// Host-report dispatch table
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package racingwheel

import (
	"errors"

	"github.com/usbarmory/racingwheel/config"
	"github.com/usbarmory/racingwheel/forcefeedback"
)

// ErrRejected is returned by HandleOutput/HandleFeatureOut when the report
// bytes fail to parse or reference a slot that does not exist, per §7
// "reject the USB transfer; no state change".
var ErrRejected = errors.New("racingwheel: report rejected")

// Paused reports the current device-control pause flag.
func (w *Wheel) Paused() bool {
	return w.state.DevicePaused
}

// ActuatorsEnabled reports the current device-control actuator flag.
func (w *Wheel) ActuatorsEnabled() bool {
	return w.state.ActuatorsEnabled
}

// DeviceGain returns the host-commanded master gain in [0, 1].
func (w *Wheel) DeviceGain() float64 {
	return w.deviceGain
}

// HandleOutput dispatches a decoded Output-class report (id is the wire
// report-id byte) per §4.H. It mutates the pool/running set/state on
// success, or returns ErrRejected with no state change on a parse error or
// an out-of-range slot reference, per §7.
func (w *Wheel) HandleOutput(id uint8, wire []byte) error {
	switch id {
	case forcefeedback.IDSetEffect.ID:
		index, d, ok := forcefeedback.DecodeSetEffect(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		d2 := d
		slot.Descriptor = &d2
		return nil

	case forcefeedback.IDSetEnvelope.ID:
		index, e, ok := forcefeedback.DecodeSetEnvelope(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		slot.Param2 = forcefeedback.EnvelopeParam{SetEnvelope: e}
		return nil

	case forcefeedback.IDSetCondition.ID:
		index, c, ok := forcefeedback.DecodeSetCondition(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		if c.ParameterBlockOffset == 1 {
			slot.Param2 = forcefeedback.ConditionParam{SetCondition: c}
		} else {
			slot.Param1 = forcefeedback.ConditionParam{SetCondition: c}
		}
		return nil

	case forcefeedback.IDSetPeriodic.ID:
		index, p, ok := forcefeedback.DecodeSetPeriodic(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		slot.Param1 = forcefeedback.PeriodicParam{SetPeriodic: p}
		return nil

	case forcefeedback.IDSetConstantForce.ID:
		index, c, ok := forcefeedback.DecodeSetConstantForce(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		slot.Param1 = forcefeedback.ConstantForceParam{SetConstantForce: c}
		return nil

	case forcefeedback.IDSetRampForce.ID:
		index, r, ok := forcefeedback.DecodeSetRampForce(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		slot.Param1 = forcefeedback.RampForceParam{SetRampForce: r}
		return nil

	case forcefeedback.IDSetCustomForce.ID:
		index, c, ok := forcefeedback.DecodeSetCustomForce(wire)
		if !ok {
			return ErrRejected
		}
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return ErrRejected
		}
		slot.Param1 = forcefeedback.CustomForceParam{SetCustomForce: c}
		return nil

	case forcefeedback.IDCustomForceData.ID:
		_, d, ok := forcefeedback.DecodeCustomForceData(wire)
		if !ok || int(d.ByteCount) > len(d.Data) {
			return ErrRejected
		}
		// Bytes are accepted but not required to be retained for kernel
		// use, per §4.D/§9; best-effort stash into the scratch buffer.
		w.pool.WriteCustomData(d.Offset, d.Data[:d.ByteCount])
		return nil

	case forcefeedback.IDDownloadForceSample.ID:
		if _, ok := forcefeedback.DecodeDownloadForceSample(wire); !ok {
			return ErrRejected
		}
		return nil

	case forcefeedback.IDSetEffectOperation.ID:
		index, op, ok := forcefeedback.DecodeSetEffectOperation(wire)
		if !ok {
			return ErrRejected
		}
		if w.pool.GetEffect(index) == nil {
			return ErrRejected
		}
		switch op.EffectOperation {
		case forcefeedback.EffectStart:
			w.running.Insert(index)
		case forcefeedback.EffectStartSolo:
			w.running.Clear()
			w.running.Insert(index)
		case forcefeedback.EffectStop:
			w.running.Remove(index)
		}
		return nil

	case forcefeedback.IDPIDBlockFree.ID:
		index, ok := forcefeedback.DecodePIDBlockFree(wire)
		if !ok {
			return ErrRejected
		}
		w.pool.FreeEffect(index)
		w.running.Remove(index)
		// Transfer result is intentionally rejected regardless of
		// outcome, per §9's ambiguity resolution: implementations may
		// pick either policy as long as they are consistent.
		return ErrRejected

	case forcefeedback.IDPIDDeviceControl.ID:
		dc, ok := forcefeedback.DecodePIDDeviceControl(wire)
		if !ok {
			return ErrRejected
		}
		switch dc.DeviceControl {
		case forcefeedback.EnableActuators:
			w.state.ActuatorsEnabled = true
		case forcefeedback.DisableActuators:
			w.state.ActuatorsEnabled = false
		case forcefeedback.StopAllEffects:
			w.running.Clear()
		case forcefeedback.DeviceReset:
			cfg := w.config
			*w = *New(cfg)
		case forcefeedback.DevicePause:
			w.state.DevicePaused = true
		case forcefeedback.DeviceContinue:
			w.state.DevicePaused = false
		}
		return nil

	case forcefeedback.IDDeviceGain.ID:
		g, ok := forcefeedback.DecodeDeviceGain(wire)
		if !ok {
			return ErrRejected
		}
		gain := float64(g.DeviceGain) / forcefeedback.ForceLogicalMax
		if gain < 0 {
			gain = 0
		}
		w.deviceGain = clampQ(gain)
		return nil

	case forcefeedback.IDPIDPoolMove.ID:
		if _, ok := forcefeedback.DecodePIDPoolMove(wire); !ok {
			return ErrRejected
		}
		return nil
	}

	return ErrRejected
}

// HandleFeatureOut dispatches a decoded Feature-class SET_REPORT (the
// CreateNewEffect and Config records), per §4.H.
func (w *Wheel) HandleFeatureOut(id uint8, wire []byte) error {
	switch id {
	case forcefeedback.IDCreateNewEffect.ID:
		c, ok := forcefeedback.DecodeCreateNewEffect(wire)
		if !ok {
			return ErrRejected
		}
		c2 := c
		w.pendingNew = &c2
		return nil

	case config.ID:
		cfg, ok := config.Parse(wire)
		if !ok {
			return ErrRejected
		}
		w.config = cfg
		return nil

	case config.ControlID:
		ctl, ok := config.ParseControl(wire)
		if !ok {
			return ErrRejected
		}
		switch ctl {
		case config.Reboot:
			w.rebootEvent = true
		case config.ResetRotation:
			w.resetRotationEvent = true
		case config.WriteConfig:
			w.writeConfigEvent = true
		}
		return nil
	}

	return ErrRejected
}

// HandleFeatureIn builds a Feature-class GET_REPORT response, per §4.H.
func (w *Wheel) HandleFeatureIn(id uint8) ([]byte, bool) {
	switch id {
	case forcefeedback.IDPIDBlockLoad.ID:
		return w.blockLoad(), true

	case forcefeedback.IDPIDPool.ID:
		return forcefeedback.EncodePIDPool(forcefeedback.PIDPool{
			RAMPoolSize:                    uint16(w.pool.PoolSize()),
			SimultaneousEffectsMax:         MaxSimultaneousEffects,
			ParamBlockSizeSetEffect:        19,
			ParamBlockSizeSetEnvelope:      12,
			ParamBlockSizeSetCondition:     13,
			ParamBlockSizeSetPeriodic:      10,
			ParamBlockSizeSetConstantForce: 2,
			ParamBlockSizeSetRampForce:     4,
			ParamBlockSizeSetCustomForce:   4,
			DeviceManagedPool:              true,
			SharedParameterBlocks:          false,
			IsochronousEnable:              true,
		}), true

	case config.ID:
		return w.config.Bytes(), true
	}

	return nil, false
}

// blockLoad implements the PIDBlockLoad GET policy of §4.H/§7: if a create
// is pending, allocate a slot and report its index (or Full with index 0 if
// the pool has no room); otherwise report Error with index 0. A pending
// create is consumed whether it succeeds or is rejected for being full.
func (w *Wheel) blockLoad() []byte {
	if w.pendingNew == nil {
		return forcefeedback.EncodePIDBlockLoad(forcefeedback.PIDBlockLoad{
			BlockLoadStatus:  forcefeedback.Error,
			RAMPoolAvailable: uint16(w.pool.Available()),
		})
	}

	w.pendingNew = nil

	index, ok := w.pool.NewEffect()
	if !ok {
		return forcefeedback.EncodePIDBlockLoad(forcefeedback.PIDBlockLoad{
			BlockLoadStatus:  forcefeedback.Full,
			RAMPoolAvailable: uint16(w.pool.Available()),
		})
	}

	return forcefeedback.EncodePIDBlockLoad(forcefeedback.PIDBlockLoad{
		EffectBlockIndex: index,
		BlockLoadStatus:  forcefeedback.Success,
		RAMPoolAvailable: uint16(w.pool.Available()),
	})
}

// InputReport builds an Input-class report (RacingWheelState or PIDState),
// per §4.H.
func (w *Wheel) InputReport(id uint8) ([]byte, bool) {
	switch id {
	case forcefeedback.IDRacingWheelState.ID:
		return forcefeedback.EncodeRacingWheelState(w.input), true
	case forcefeedback.IDPIDState.ID:
		state := w.state
		state.EffectPlaying = w.running.Len() > 0
		return forcefeedback.EncodePIDState(state), true
	}
	return nil, false
}
