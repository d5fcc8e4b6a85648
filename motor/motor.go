// Motor driver shim: torque to PWM duty + direction
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package motor converts a saturated force feedback command into the
// duty-cycle and direction pair an H-bridge PWM driver expects. It applies
// the configuration's motor_min/motor_max/motor_deadband shaping the same
// way the reference firmware's motor driver does: a deadband below which
// the motor is left disabled, and a floor duty below which the motor
// stalls without producing torque.
package motor

import "math"

// Direction is the H-bridge polarity a Command drives.
type Direction uint8

const (
	// Coast disables both PWM channels and the H-bridge enable pin.
	Coast Direction = iota
	Forward
	Reverse
)

// Command is a motor driver command: a direction and a PWM duty register
// value in [0, maxDuty], where maxDuty is the PWM channel's maximum duty
// value passed to FromForce (the reference firmware's per-channel
// "get_max_duty" query).
type Command struct {
	Direction Direction
	Duty      uint16
}

// FromForce converts ffb (in [-1, 1], as returned by Wheel.Force) into a
// Command, given the PWM channel's maximum duty value maxDuty and the
// configuration's motor_min/motor_max/motor_deadband fields (already
// expressed as fractions of full scale, §6).
//
// ffb is first clamped to ±motorMax (mirroring the original motor.rs
// set_speed's max_speed clamp; motor_max is already applied by Wheel.Force,
// so this is a defensive second clamp). At or below motorDeadband the motor
// coasts. Above it, |ffb| is mapped linearly onto [motorMin, 1]
// (motorMin + (1-motorMin)*|ffb|) so the motor never receives a command too
// weak to produce torque, then scaled to maxDuty.
func FromForce(ffb float64, maxDuty uint16, motorMin, motorMax, motorDeadband float32) Command {
	max := clamp(float64(motorMax), 0, 1)
	ffb = clamp(ffb, -max, max)

	abs := math.Abs(ffb)
	deadband := float64(motorDeadband)

	if abs <= deadband {
		return Command{Direction: Coast}
	}

	min := float64(motorMin)
	scale := min + (1-min)*abs

	dir := Forward
	if ffb < 0 {
		dir = Reverse
	}

	duty := uint16(clamp(scale, 0, 1) * float64(maxDuty))

	return Command{Direction: dir, Duty: duty}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
