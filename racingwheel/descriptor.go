// HID report descriptor builder
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package racingwheel

import (
	"bytes"
	"encoding/binary"

	"github.com/usbarmory/racingwheel/forcefeedback"
)

// HID report descriptor item tags, p29-40, Device Class Definition for
// Human Interface Devices (HID) v1.11. Only the subset this descriptor
// uses is named; the descriptor itself is opaque to the core (§6).
const (
	tagUsagePage     = 0x05
	tagUsage         = 0x09
	tagCollection    = 0xA1
	tagEndCollection = 0xC0
	tagReportID      = 0x85
	tagReportSize    = 0x75
	tagReportCount   = 0x95
	tagLogicalMin    = 0x15
	tagLogicalMaxW   = 0x26
	tagInput         = 0x81
	tagOutput        = 0x91
	tagFeature       = 0xB1

	collectionApplication = 0x01
	collectionLogical     = 0x02

	dataVarAbs = 0x02
)

// UsagePageGenericDesktop and UsagePagePID are the two usage pages this
// device's collections live under, per the PID usage tables.
const (
	UsagePageGenericDesktop = 0x01
	UsagePagePID            = 0x0F

	UsageJoystick  = 0x04
	UsageX         = 0x30
	UsageSetEffect = 0x21
)

// descriptorBuilder accumulates HID report descriptor item bytes. Every
// call appends a one-byte tag followed by its little-endian payload,
// matching the short-item encoding used throughout the HID spec.
type descriptorBuilder struct {
	buf bytes.Buffer
}

func (d *descriptorBuilder) item(tag byte, data ...byte) *descriptorBuilder {
	d.buf.WriteByte(tag | byte(len(data)))
	d.buf.Write(data)
	return d
}

func (d *descriptorBuilder) tag(tag byte) *descriptorBuilder {
	return d.item(tag)
}

func (d *descriptorBuilder) u8(tag, v byte) *descriptorBuilder {
	return d.item(tag, v)
}

func (d *descriptorBuilder) u16(tag byte, v uint16) *descriptorBuilder {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return d.item(tag, b...)
}

func (d *descriptorBuilder) Bytes() []byte {
	return d.buf.Bytes()
}

// Descriptor builds the racing wheel's HID report descriptor: a top-level
// joystick application collection holding the steering/throttle/brake and
// button inputs and the PID state input, with one nested PID logical
// collection declaring every output and feature report id named in
// report_id.go. Byte contents are opaque to the core per §6; only the
// report ids and lengths encoded here need to agree with codec.go. Lengths
// count the bytes after the report id byte, including the leading
// effect_block_index byte of the reports that reference a slot.
func Descriptor() []byte {
	d := new(descriptorBuilder)

	d.u8(tagUsagePage, UsagePageGenericDesktop)
	d.u8(tagUsage, UsageJoystick)
	d.u8(tagCollection, collectionApplication)

	d.u8(tagReportID, forcefeedback.IDRacingWheelState.ID)
	d.u8(tagUsagePage, UsagePageGenericDesktop)
	d.u8(tagUsage, UsageX)
	d.u8(tagUsage, UsageX) // throttle shares the logical axis usage
	d.u8(tagUsage, UsageX) // brake shares the logical axis usage
	d.u8(tagLogicalMin, 0x00)
	d.u16(tagLogicalMaxW, 0x7FFF)
	d.u8(tagReportSize, 16)
	d.u8(tagReportCount, 3)
	d.u8(tagInput, dataVarAbs)

	d.u8(tagReportCount, 8)
	d.u8(tagReportSize, 1)
	d.u8(tagLogicalMin, 0x00)
	d.u8(tagLogicalMin, 0x01)
	d.u8(tagInput, dataVarAbs)

	d.u8(tagReportID, forcefeedback.IDPIDState.ID)
	d.u8(tagReportCount, 16)
	d.u8(tagReportSize, 1)
	d.u8(tagInput, dataVarAbs)

	d.u8(tagUsagePage, UsagePagePID)
	d.u8(tagCollection, collectionLogical)
	d.u8(tagUsage, UsageSetEffect)

	pidReportSizes := []struct {
		id   forcefeedback.ReportID
		size int
	}{
		{forcefeedback.IDSetEffect, 20},
		{forcefeedback.IDSetEnvelope, 13},
		{forcefeedback.IDSetCondition, 14},
		{forcefeedback.IDSetPeriodic, 11},
		{forcefeedback.IDSetConstantForce, 3},
		{forcefeedback.IDSetRampForce, 5},
		{forcefeedback.IDCustomForceData, 16},
		{forcefeedback.IDDownloadForceSample, 2},
		{forcefeedback.IDSetEffectOperation, 3},
		{forcefeedback.IDPIDBlockFree, 1},
		{forcefeedback.IDPIDDeviceControl, 1},
		{forcefeedback.IDDeviceGain, 2},
		{forcefeedback.IDSetCustomForce, 5},
		{forcefeedback.IDPIDPoolMove, 6},
	}

	for _, r := range pidReportSizes {
		d.u8(tagReportID, r.id.ID)
		d.u8(tagReportCount, byte(r.size))
		d.u8(tagReportSize, 8)
		d.u8(tagOutput, dataVarAbs)
	}

	featureReportSizes := []struct {
		id   forcefeedback.ReportID
		size int
	}{
		{forcefeedback.IDCreateNewEffect, 3},
		{forcefeedback.IDPIDBlockLoad, 4},
		{forcefeedback.IDPIDPool, 11},
		{forcefeedback.IDConfig, payloadLenConfigV2},
	}

	for _, r := range featureReportSizes {
		d.u8(tagReportID, r.id.ID)
		d.u8(tagReportCount, byte(r.size))
		d.u8(tagReportSize, 8)
		d.u8(tagFeature, dataVarAbs)
	}

	d.tag(tagEndCollection) // PID logical collection
	d.tag(tagEndCollection) // joystick application collection

	return d.Bytes()
}

// payloadLenConfigV2 mirrors config.payloadLenV2 (the full-shape config
// payload, excluding the report id byte) for descriptor sizing;
// config.payloadLenV2 is unexported, so the value is repeated here.
const payloadLenConfigV2 = 62
