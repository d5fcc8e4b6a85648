// Configurator feature-report configuration record
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package config implements the racing wheel's persisted configuration
// record: the feature-report 0x04 payload, its versioned wire codec, and
// the device-control feature-report 0x05 selector.
package config

import (
	"encoding/binary"
	"math"
)

// ID is the feature-report id the configurator reads/writes the config
// through, per §6.
const ID = 0x04

// ControlID is the feature-report id for the device-control selector.
const ControlID = 0x05

// Control selects a device-control action via the 0x05 feature report.
type Control uint8

const (
	Reboot        Control = 1
	ResetRotation Control = 2
	WriteConfig   Control = 3
)

// Config is the packed configuration record of §6. Unused fields default
// to 0, and the wire format is versioned by payload length: three
// historical shapes exist (smallest first), and every field beyond a given
// shape's length reads back as its zero value.
type Config struct {
	Gain                 float32
	Expo                 float32
	DerivativeSmoothing  float32
	MaxRotation          uint16
	SpringGain           float32
	SpringCoefficient    float32
	SpringSaturation     float32
	SpringDeadband       float32
	DamperGain           float32
	DamperCoefficient    float32
	DamperSaturation     float32
	DamperDeadband       float32
	MotorMin             float32
	MotorMax             float32
	MotorDeadband        float32
	MotorFrequencyHz     uint16
	UpdateFrequencyHz    uint16
}

// Default returns a reasonable default configuration: gain 1, expo 1, a
// centered spring with unit coefficient, full-scale motor, no damper.
func Default() Config {
	return Config{
		Gain:              1,
		Expo:              1,
		MaxRotation:       900,
		SpringGain:        1,
		SpringCoefficient: 1,
		SpringSaturation:  1,
		MotorMax:          1,
		MotorFrequencyHz:  20_000,
		UpdateFrequencyHz: 1_000,
	}
}

// payload lengths of the three historical shapes this record has shipped
// as, smallest (oldest) first. Length excludes the leading report-id byte.
const (
	payloadLenV0 = 14 // gain, max_rotation, motor_max, motor_deadband
	payloadLenV1 = 38 // + expo, spring_*, motor_frequency_hz, update_frequency_hz
	payloadLenV2 = 62 // + derivative_smoothing, damper_*, motor_min
)

// Bytes encodes the full-shape configuration record, little-endian, with
// the leading report id byte.
func (c Config) Bytes() []byte {
	b := make([]byte, 1+payloadLenV2)
	b[0] = ID

	off := 1
	putF32 := func(v float32) {
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
		off += 4
	}
	putU16 := func(v uint16) {
		binary.LittleEndian.PutUint16(b[off:], v)
		off += 2
	}

	putF32(c.Gain)
	putF32(c.Expo)
	putF32(c.DerivativeSmoothing)
	putU16(c.MaxRotation)
	putF32(c.SpringGain)
	putF32(c.SpringCoefficient)
	putF32(c.SpringSaturation)
	putF32(c.SpringDeadband)
	putF32(c.DamperGain)
	putF32(c.DamperCoefficient)
	putF32(c.DamperSaturation)
	putF32(c.DamperDeadband)
	putF32(c.MotorMin)
	putF32(c.MotorMax)
	putF32(c.MotorDeadband)
	putU16(c.MotorFrequencyHz)
	putU16(c.UpdateFrequencyHz)

	return b
}

// Parse decodes a configuration record of any of the three historical
// payload lengths, returning false if the payload matches none of them.
// Fields beyond the payload's length are left at their zero value, per
// §6 "Unused fields default to 0".
func Parse(wire []byte) (Config, bool) {
	if len(wire) < 1 {
		return Config{}, false
	}
	payload := wire[1:]

	switch len(payload) {
	case payloadLenV0, payloadLenV1, payloadLenV2:
		// accepted shapes, decoded progressively below
	default:
		return Config{}, false
	}

	var c Config
	off := 0

	getF32 := func() float32 {
		if off+4 > len(payload) {
			off += 4
			return 0
		}
		v := math.Float32frombits(binary.LittleEndian.Uint32(payload[off:]))
		off += 4
		return v
	}
	getU16 := func() uint16 {
		if off+2 > len(payload) {
			off += 2
			return 0
		}
		v := binary.LittleEndian.Uint16(payload[off:])
		off += 2
		return v
	}

	if len(payload) == payloadLenV0 {
		c.Gain = getF32()
		c.MaxRotation = getU16()
		c.MotorMax = getF32()
		c.MotorDeadband = getF32()
		return c, true
	}

	c.Gain = getF32()
	c.Expo = getF32()
	if len(payload) == payloadLenV2 {
		c.DerivativeSmoothing = getF32()
	}
	c.MaxRotation = getU16()
	c.SpringGain = getF32()
	c.SpringCoefficient = getF32()
	c.SpringSaturation = getF32()
	c.SpringDeadband = getF32()
	if len(payload) == payloadLenV2 {
		c.DamperGain = getF32()
		c.DamperCoefficient = getF32()
		c.DamperSaturation = getF32()
		c.DamperDeadband = getF32()
		c.MotorMin = getF32()
	}
	c.MotorMax = getF32()
	c.MotorDeadband = getF32()
	c.MotorFrequencyHz = getU16()
	c.UpdateFrequencyHz = getU16()

	return c, true
}

// ParseControl decodes the 0x05 device-control feature report.
func ParseControl(wire []byte) (Control, bool) {
	if len(wire) < 2 {
		return 0, false
	}
	switch Control(wire[1]) {
	case Reboot, ResetRotation, WriteConfig:
		return Control(wire[1]), true
	}
	return 0, false
}

// EncodeControl encodes the 0x05 device-control feature report.
func EncodeControl(c Control) []byte {
	return []byte{ControlID, byte(c)}
}
