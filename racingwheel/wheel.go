// Wheel core: pool + running set + per-tick advance/force API
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package racingwheel

import (
	"math"

	"github.com/usbarmory/racingwheel/config"
	"github.com/usbarmory/racingwheel/forcefeedback"
)

// incompleteEffectTimeoutMS is how long an incomplete effect is allowed to
// keep running before the scheduler prunes it, per §4.C.
const incompleteEffectTimeoutMS = 10_000

// Wheel is the racing wheel force feedback core: the effect pool, the
// running-effect set, current axis state, device gain, and the built-in
// spring configuration, per §3/§4.G.
type Wheel struct {
	pool         *Pool
	pendingNew   *forcefeedback.CreateNewEffect
	running      *RunningSet
	deviceGain   float64
	input        forcefeedback.RacingWheelState
	state        forcefeedback.PIDState
	steeringPrev float64
	steeringVel  float64
	config       config.Config

	writeConfigEvent   bool
	rebootEvent        bool
	resetRotationEvent bool
}

// New constructs a wheel core with an empty pool and running set, per
// §4.G.
func New(cfg config.Config) *Wheel {
	return &Wheel{
		pool:    NewPool(),
		running: NewRunningSet(),
		config:  cfg,
	}
}

// Config returns the current configuration.
func (w *Wheel) Config() config.Config {
	return w.config
}

// SetConfig replaces the configuration (the Config feature-report OUT
// handler, §4.H). Config is externally owned and survives DeviceReset.
func (w *Wheel) SetConfig(cfg config.Config) {
	w.config = cfg
}

// SetSteering maps a steering angle in degrees to the axis fixed range,
// per §4.G: ±(max_rotation/2) degrees saturates to ±1.
func (w *Wheel) SetSteering(degrees float64) {
	maxRotation := float64(w.config.MaxRotation)
	if maxRotation == 0 {
		w.input.Steering = 0
		return
	}
	steering := degrees * 2 / maxRotation
	w.input.Steering = int16(clampQ(steering) * forcefeedback.SteeringLogicalMax)
}

// SetButtons updates the 8 button states of the input report.
func (w *Wheel) SetButtons(buttons [8]bool) {
	w.input.Buttons = buttons
}

// SetThrottle updates the throttle axis of the input report.
func (w *Wheel) SetThrottle(throttle float64) {
	w.input.Throttle = int16(clampQ(throttle) * forcefeedback.ForceLogicalMax)
}

// SetBrake updates the brake axis of the input report.
func (w *Wheel) SetBrake(brake float64) {
	w.input.Brake = int16(clampQ(brake) * forcefeedback.ForceLogicalMax)
}

func clampQ(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (w *Wheel) steering() float64 {
	return float64(w.input.Steering) / forcefeedback.SteeringLogicalMax
}

// Advance steps the simulation forward by deltaMS milliseconds, per §4.G:
// it recomputes steering velocity, then advances every running effect's
// elapsed time and drops effects whose duration elapsed or which have been
// incomplete for too long.
func (w *Wheel) Advance(deltaMS uint32) {
	if deltaMS == 0 {
		return
	}

	steering := w.steering()
	w.steeringVel = (steering - w.steeringPrev) * (1000 / float64(deltaMS))
	w.steeringPrev = steering

	w.running.Advance(deltaMS, func(index uint8, elapsedMS uint32) bool {
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return true
		}
		if slot.Descriptor != nil && slot.Descriptor.DurationSet && uint32(slot.Descriptor.Duration) < elapsedMS {
			return true
		}
		if elapsedMS > incompleteEffectTimeoutMS && !slot.IsComplete() {
			return true
		}
		return false
	})
}

// Force composes the total motor torque command, per §4.F/§4.G: the sum of
// every running PID effect's contribution plus the built-in spring, scaled
// by device gain and config gain, clamped to ±1, scaled by motor_max, then
// shaped by the signed-power expo curve. The result is a saturated F_F in
// [-1, 1].
func (w *Wheel) Force() float64 {
	var total float64

	w.running.Each(func(index uint8, elapsedMS uint32) {
		slot := w.pool.GetEffect(index)
		if slot == nil {
			return
		}
		total += forcefeedback.Compute(slot, elapsedMS, w.steering(), w.steeringVel, 0)
	})

	total += forcefeedback.Compute(w.baseSpring(), 0, w.steering(), 0, 0)
	total = clampQ(total)

	ffb := total * w.deviceGain * float64(w.config.Gain)
	ffb = clampQ(ffb)
	ffb *= float64(w.config.MotorMax)
	ffb = clampQ(ffb)

	return math.Copysign(math.Pow(math.Abs(ffb), float64(w.config.Expo)), ffb)
}

// baseSpring builds the built-in spring effect slot from the current
// configuration, per §4.F "Composition at the wheel level".
func (w *Wheel) baseSpring() *forcefeedback.Slot {
	c := w.config
	gain := int16(clampQ(float64(c.SpringGain)) * forcefeedback.ForceLogicalMax)
	coef := int16(clampQ(float64(c.SpringCoefficient)) * forcefeedback.ForceLogicalMax)
	sat := int16(clampQ(float64(c.SpringSaturation)) * forcefeedback.ForceLogicalMax)
	deadband := int16(clampQ(float64(c.SpringDeadband)) * forcefeedback.ForceLogicalMax)

	return &forcefeedback.Slot{
		Descriptor: &forcefeedback.EffectDescriptor{EffectType: forcefeedback.Spring, Gain: gain},
		Param1: forcefeedback.ConditionParam{SetCondition: forcefeedback.SetCondition{
			PositiveCoefficient: coef,
			NegativeCoefficient: coef,
			PositiveSaturation:  sat,
			NegativeSaturation:  sat,
			DeadBand:            deadband,
		}},
	}
}

// WriteConfigEvent reports and clears the pending flash-write request
// raised by the WriteConfig device control, per §6.
func (w *Wheel) WriteConfigEvent() bool {
	v := w.writeConfigEvent
	w.writeConfigEvent = false
	return v
}

// RebootEvent reports and clears the pending reboot request.
func (w *Wheel) RebootEvent() bool {
	v := w.rebootEvent
	w.rebootEvent = false
	return v
}

// ResetRotationEvent reports and clears the pending steering-zero request,
// resetting steering state as a side effect when pending.
func (w *Wheel) ResetRotationEvent() bool {
	if !w.resetRotationEvent {
		return false
	}
	w.resetRotationEvent = false
	w.input.Steering = 0
	w.steeringPrev = 0
	w.steeringVel = 0
	return true
}
