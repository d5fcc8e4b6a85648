// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package config

import "testing"

func TestRoundTripFullShape(t *testing.T) {
	want := Default()
	want.DerivativeSmoothing = 0.2
	want.DamperGain = 0.5
	want.MotorMin = 0.1

	got, ok := Parse(want.Bytes())
	if !ok {
		t.Fatal("parse failed")
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestParseLegacyV1Shape(t *testing.T) {
	wire := make([]byte, 1+payloadLenV1)
	wire[0] = ID

	got, ok := Parse(wire)
	if !ok {
		t.Fatal("expected legacy v1 payload length to be accepted")
	}
	if got.DerivativeSmoothing != 0 || got.DamperGain != 0 || got.MotorMin != 0 {
		t.Errorf("expected v1-absent fields to default to zero, got %+v", got)
	}
}

func TestParseLegacyV0Shape(t *testing.T) {
	wire := make([]byte, 1+payloadLenV0)
	wire[0] = ID

	got, ok := Parse(wire)
	if !ok {
		t.Fatal("expected legacy v0 payload length to be accepted")
	}
	if got.SpringGain != 0 || got.MotorFrequencyHz != 0 {
		t.Errorf("expected v0-absent fields to default to zero, got %+v", got)
	}
}

func TestParseRejectsUnknownLength(t *testing.T) {
	wire := make([]byte, 1+7)
	wire[0] = ID

	if _, ok := Parse(wire); ok {
		t.Error("expected unrecognized payload length to be rejected")
	}
}

func TestControlRoundTrip(t *testing.T) {
	wire := EncodeControl(WriteConfig)
	got, ok := ParseControl(wire)
	if !ok || got != WriteConfig {
		t.Errorf("control round trip = %v, %v", got, ok)
	}
}

func TestControlRejectsOutOfRange(t *testing.T) {
	if _, ok := ParseControl([]byte{ControlID, 0xFF}); ok {
		t.Error("expected out-of-range control selector to be rejected")
	}
}
