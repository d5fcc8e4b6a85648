// Wire and in-pool byte codecs for PID reports
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package forcefeedback

// All multi-byte integers on the wire and in the pool are little-endian,
// per §4.B/§6.

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLE16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// bits extracts nBits from byte starting at bit position start, counted
// from the least significant bit (bit 0), matching the reference bit layout
// used by SetCondition's packed byte.
func bits(b byte, start, nBits uint8) uint8 {
	shift := int8(8) - int8(start) - int8(nBits)
	if shift < 0 {
		shift = 0
	}
	return (b << shift) >> (8 - nBits)
}

func bitflag(flags byte, i uint) bool {
	return flags&(1<<i) != 0
}

func bitflags(flags ...bool) byte {
	var b byte
	for i, f := range flags {
		if f {
			b |= 1 << uint(i)
		}
	}
	return b
}

// --- SetEffect (in-pool size 19, wire = id + effect_block_index + 19) ---

func FromRAMSetEffect(ram []byte) (EffectDescriptor, bool) {
	if len(ram) < 19 {
		return EffectDescriptor{}, false
	}

	et, ok := ParseEffectType(ram[0])
	if !ok {
		return EffectDescriptor{}, false
	}

	duration := le16(ram[1:3])
	samplePeriod := le16(ram[5:7])

	return EffectDescriptor{
		EffectType:                        et,
		Duration:                          duration,
		DurationSet:                       duration != 0 && duration != 0xFFFF,
		TriggerRepeatInterval:             le16(ram[3:5]),
		SamplePeriod:                      samplePeriod,
		SamplePeriodSet:                   samplePeriod != 0,
		Gain:                              int16(le16(ram[7:9])),
		TriggerButton:                     ram[9],
		AxisXEnable:                       bitflag(ram[10], 0),
		AxisYEnable:                       bitflag(ram[10], 1),
		DirectionEnable:                   bitflag(ram[10], 2),
		DirectionInstance1:                ram[11],
		DirectionInstance2:                ram[12],
		StartDelay:                        le16(ram[13:15]),
		TypeSpecificBlockOffsetInstance1: le16(ram[15:17]),
		TypeSpecificBlockOffsetInstance2: le16(ram[17:19]),
	}, true
}

func ToRAMSetEffect(e EffectDescriptor) []byte {
	ram := make([]byte, 19)
	ram[0] = byte(e.EffectType)

	duration := e.Duration
	if !e.DurationSet {
		duration = 0
	}
	putLE16(ram[1:3], duration)
	putLE16(ram[3:5], e.TriggerRepeatInterval)

	samplePeriod := e.SamplePeriod
	if !e.SamplePeriodSet {
		samplePeriod = 0
	}
	putLE16(ram[5:7], samplePeriod)

	putLE16(ram[7:9], uint16(e.Gain))
	ram[9] = e.TriggerButton
	ram[10] = bitflags(e.AxisXEnable, e.AxisYEnable, e.DirectionEnable)
	ram[11] = e.DirectionInstance1
	ram[12] = e.DirectionInstance2
	putLE16(ram[13:15], e.StartDelay)
	putLE16(ram[15:17], e.TypeSpecificBlockOffsetInstance1)
	putLE16(ram[17:19], e.TypeSpecificBlockOffsetInstance2)

	return ram
}

// DecodeSetEffect decodes a full wire OUT report: id | effect_block_index | ram...
func DecodeSetEffect(wire []byte) (uint8, EffectDescriptor, bool) {
	if len(wire) < 2 {
		return 0, EffectDescriptor{}, false
	}
	e, ok := FromRAMSetEffect(wire[2:])
	return wire[1], e, ok
}

// EncodeSetEffect encodes a full wire OUT report.
func EncodeSetEffect(index uint8, e EffectDescriptor) []byte {
	return append([]byte{byte(IDSetEffect.ID), index}, ToRAMSetEffect(e)...)
}

// --- SetEnvelope (in-pool size 12) ---

func FromRAMSetEnvelope(ram []byte) (SetEnvelope, bool) {
	if len(ram) < 12 {
		return SetEnvelope{}, false
	}
	return SetEnvelope{
		AttackLevel: int16(le16(ram[0:2])),
		FadeLevel:   int16(le16(ram[2:4])),
		AttackTime:  le32(ram[4:8]),
		FadeTime:    le32(ram[8:12]),
	}, true
}

func ToRAMSetEnvelope(e SetEnvelope) []byte {
	ram := make([]byte, 12)
	putLE16(ram[0:2], uint16(e.AttackLevel))
	putLE16(ram[2:4], uint16(e.FadeLevel))
	putLE32(ram[4:8], e.AttackTime)
	putLE32(ram[8:12], e.FadeTime)
	return ram
}

func DecodeSetEnvelope(wire []byte) (uint8, SetEnvelope, bool) {
	if len(wire) < 2 {
		return 0, SetEnvelope{}, false
	}
	e, ok := FromRAMSetEnvelope(wire[2:])
	return wire[1], e, ok
}

func EncodeSetEnvelope(index uint8, e SetEnvelope) []byte {
	return append([]byte{byte(IDSetEnvelope.ID), index}, ToRAMSetEnvelope(e)...)
}

// --- SetCondition (in-pool size 13) ---

func FromRAMSetCondition(ram []byte) (SetCondition, bool) {
	if len(ram) < 13 {
		return SetCondition{}, false
	}
	return SetCondition{
		ParameterBlockOffset:              bits(ram[0], 0, 4),
		TypeSpecificBlockOffsetInstance1: bits(ram[0], 4, 2),
		TypeSpecificBlockOffsetInstance2: bits(ram[0], 6, 2),
		CPOffset:                         int16(le16(ram[1:3])),
		PositiveCoefficient:              int16(le16(ram[3:5])),
		NegativeCoefficient:              int16(le16(ram[5:7])),
		PositiveSaturation:               int16(le16(ram[7:9])),
		NegativeSaturation:               int16(le16(ram[9:11])),
		DeadBand:                         int16(le16(ram[11:13])),
	}, true
}

func ToRAMSetCondition(c SetCondition) []byte {
	ram := make([]byte, 13)
	ram[0] = (c.ParameterBlockOffset & 0b1111) |
		(c.TypeSpecificBlockOffsetInstance1&0b11)<<4 |
		(c.TypeSpecificBlockOffsetInstance2&0b11)<<6
	putLE16(ram[1:3], uint16(c.CPOffset))
	putLE16(ram[3:5], uint16(c.PositiveCoefficient))
	putLE16(ram[5:7], uint16(c.NegativeCoefficient))
	putLE16(ram[7:9], uint16(c.PositiveSaturation))
	putLE16(ram[9:11], uint16(c.NegativeSaturation))
	putLE16(ram[11:13], uint16(c.DeadBand))
	return ram
}

func DecodeSetCondition(wire []byte) (uint8, SetCondition, bool) {
	if len(wire) < 2 {
		return 0, SetCondition{}, false
	}
	c, ok := FromRAMSetCondition(wire[2:])
	return wire[1], c, ok
}

func EncodeSetCondition(index uint8, c SetCondition) []byte {
	return append([]byte{byte(IDSetCondition.ID), index}, ToRAMSetCondition(c)...)
}

// --- SetPeriodic (in-pool size 10) ---

func FromRAMSetPeriodic(ram []byte) (SetPeriodic, bool) {
	if len(ram) < 10 {
		return SetPeriodic{}, false
	}
	return SetPeriodic{
		Magnitude: int16(le16(ram[0:2])),
		Offset:    int16(le16(ram[2:4])),
		Phase:     le16(ram[4:6]),
		Period:    le32(ram[6:10]),
	}, true
}

func ToRAMSetPeriodic(p SetPeriodic) []byte {
	ram := make([]byte, 10)
	putLE16(ram[0:2], uint16(p.Magnitude))
	putLE16(ram[2:4], uint16(p.Offset))
	putLE16(ram[4:6], p.Phase)
	putLE32(ram[6:10], p.Period)
	return ram
}

func DecodeSetPeriodic(wire []byte) (uint8, SetPeriodic, bool) {
	if len(wire) < 2 {
		return 0, SetPeriodic{}, false
	}
	p, ok := FromRAMSetPeriodic(wire[2:])
	return wire[1], p, ok
}

func EncodeSetPeriodic(index uint8, p SetPeriodic) []byte {
	return append([]byte{byte(IDSetPeriodic.ID), index}, ToRAMSetPeriodic(p)...)
}

// --- SetConstantForce (in-pool size 2) ---

func FromRAMSetConstantForce(ram []byte) (SetConstantForce, bool) {
	if len(ram) < 2 {
		return SetConstantForce{}, false
	}
	return SetConstantForce{Magnitude: int16(le16(ram[0:2]))}, true
}

func ToRAMSetConstantForce(c SetConstantForce) []byte {
	ram := make([]byte, 2)
	putLE16(ram[0:2], uint16(c.Magnitude))
	return ram
}

func DecodeSetConstantForce(wire []byte) (uint8, SetConstantForce, bool) {
	if len(wire) < 2 {
		return 0, SetConstantForce{}, false
	}
	c, ok := FromRAMSetConstantForce(wire[2:])
	return wire[1], c, ok
}

func EncodeSetConstantForce(index uint8, c SetConstantForce) []byte {
	return append([]byte{byte(IDSetConstantForce.ID), index}, ToRAMSetConstantForce(c)...)
}

// --- SetRampForce (in-pool size 4) ---

func FromRAMSetRampForce(ram []byte) (SetRampForce, bool) {
	if len(ram) < 4 {
		return SetRampForce{}, false
	}
	return SetRampForce{
		RampStart: int16(le16(ram[0:2])),
		RampEnd:   int16(le16(ram[2:4])),
	}, true
}

func ToRAMSetRampForce(r SetRampForce) []byte {
	ram := make([]byte, 4)
	putLE16(ram[0:2], uint16(r.RampStart))
	putLE16(ram[2:4], uint16(r.RampEnd))
	return ram
}

func DecodeSetRampForce(wire []byte) (uint8, SetRampForce, bool) {
	if len(wire) < 2 {
		return 0, SetRampForce{}, false
	}
	r, ok := FromRAMSetRampForce(wire[2:])
	return wire[1], r, ok
}

func EncodeSetRampForce(index uint8, r SetRampForce) []byte {
	return append([]byte{byte(IDSetRampForce.ID), index}, ToRAMSetRampForce(r)...)
}

// --- SetCustomForce (in-pool size 4) ---

func FromRAMSetCustomForce(ram []byte) (SetCustomForce, bool) {
	if len(ram) < 4 {
		return SetCustomForce{}, false
	}
	return SetCustomForce{
		CustomForceDataOffset: le16(ram[0:2]),
		SampleCount:           le16(ram[2:4]),
	}, true
}

func ToRAMSetCustomForce(c SetCustomForce) []byte {
	ram := make([]byte, 4)
	putLE16(ram[0:2], c.CustomForceDataOffset)
	putLE16(ram[2:4], c.SampleCount)
	return ram
}

func DecodeSetCustomForce(wire []byte) (uint8, SetCustomForce, bool) {
	if len(wire) < 2 {
		return 0, SetCustomForce{}, false
	}
	c, ok := FromRAMSetCustomForce(wire[2:])
	return wire[1], c, ok
}

func EncodeSetCustomForce(index uint8, c SetCustomForce) []byte {
	return append([]byte{byte(IDSetCustomForce.ID), index}, ToRAMSetCustomForce(c)...)
}

// --- CustomForceData (in-pool size 15) ---

func FromRAMCustomForceData(ram []byte) (CustomForceDataReport, bool) {
	if len(ram) < 15 {
		return CustomForceDataReport{}, false
	}
	var data [12]byte
	copy(data[:], ram[3:15])
	return CustomForceDataReport{
		Offset:    le16(ram[0:2]),
		ByteCount: ram[2],
		Data:      data,
	}, true
}

func ToRAMCustomForceData(c CustomForceDataReport) []byte {
	ram := make([]byte, 15)
	putLE16(ram[0:2], c.Offset)
	ram[2] = c.ByteCount
	copy(ram[3:15], c.Data[:])
	return ram
}

func DecodeCustomForceData(wire []byte) (uint8, CustomForceDataReport, bool) {
	if len(wire) < 2 {
		return 0, CustomForceDataReport{}, false
	}
	c, ok := FromRAMCustomForceData(wire[2:])
	return wire[1], c, ok
}

func EncodeCustomForceData(index uint8, c CustomForceDataReport) []byte {
	return append([]byte{byte(IDCustomForceData.ID), index}, ToRAMCustomForceData(c)...)
}

// --- Reports with no in-pool form (pure wire) ---

func DecodeDownloadForceSample(wire []byte) (DownloadForceSample, bool) {
	if len(wire) < 3 {
		return DownloadForceSample{}, false
	}
	return DownloadForceSample{Steering: int8(wire[1]), Throttle: wire[2]}, true
}

func EncodeDownloadForceSample(s DownloadForceSample) []byte {
	return []byte{byte(IDDownloadForceSample.ID), byte(s.Steering), s.Throttle}
}

func DecodeSetEffectOperation(wire []byte) (uint8, SetEffectOperation, bool) {
	if len(wire) < 4 {
		return 0, SetEffectOperation{}, false
	}
	op, ok := ParseEffectOperation(wire[2])
	if !ok {
		return 0, SetEffectOperation{}, false
	}
	return wire[1], SetEffectOperation{EffectOperation: op, LoopCount: wire[3]}, true
}

func EncodeSetEffectOperation(index uint8, s SetEffectOperation) []byte {
	return []byte{byte(IDSetEffectOperation.ID), index, byte(s.EffectOperation), s.LoopCount}
}

func DecodePIDBlockFree(wire []byte) (uint8, bool) {
	if len(wire) < 2 {
		return 0, false
	}
	return wire[1], true
}

func EncodePIDBlockFree(index uint8) []byte {
	return []byte{byte(IDPIDBlockFree.ID), index}
}

func DecodePIDDeviceControl(wire []byte) (PIDDeviceControl, bool) {
	if len(wire) < 2 {
		return PIDDeviceControl{}, false
	}
	dc, ok := ParseDeviceControl(wire[1])
	if !ok {
		return PIDDeviceControl{}, false
	}
	return PIDDeviceControl{DeviceControl: dc}, true
}

func EncodePIDDeviceControl(d PIDDeviceControl) []byte {
	return []byte{byte(IDPIDDeviceControl.ID), byte(d.DeviceControl)}
}

func DecodeDeviceGain(wire []byte) (DeviceGain, bool) {
	if len(wire) < 3 {
		return DeviceGain{}, false
	}
	return DeviceGain{DeviceGain: int16(le16(wire[1:3]))}, true
}

func EncodeDeviceGain(g DeviceGain) []byte {
	b := make([]byte, 3)
	b[0] = byte(IDDeviceGain.ID)
	putLE16(b[1:3], uint16(g.DeviceGain))
	return b
}

func DecodePIDPoolMove(wire []byte) (PIDPoolMove, bool) {
	if len(wire) < 7 {
		return PIDPoolMove{}, false
	}
	return PIDPoolMove{
		MoveSource:      le16(wire[1:3]),
		MoveDestination: le16(wire[3:5]),
		MoveLength:      le16(wire[5:7]),
	}, true
}

func EncodePIDPoolMove(m PIDPoolMove) []byte {
	b := make([]byte, 7)
	b[0] = byte(IDPIDPoolMove.ID)
	putLE16(b[1:3], m.MoveSource)
	putLE16(b[3:5], m.MoveDestination)
	putLE16(b[5:7], m.MoveLength)
	return b
}

func DecodeCreateNewEffect(wire []byte) (CreateNewEffect, bool) {
	if len(wire) < 4 {
		return CreateNewEffect{}, false
	}
	et, ok := ParseEffectType(wire[1])
	if !ok {
		return CreateNewEffect{}, false
	}
	return CreateNewEffect{EffectType: et, ByteCount: le16(wire[2:4])}, true
}

func EncodeCreateNewEffect(c CreateNewEffect) []byte {
	b := make([]byte, 4)
	b[0] = byte(IDCreateNewEffect.ID)
	b[1] = byte(c.EffectType)
	putLE16(b[2:4], c.ByteCount)
	return b
}

func EncodePIDBlockLoad(l PIDBlockLoad) []byte {
	b := make([]byte, 5)
	b[0] = byte(IDPIDBlockLoad.ID)
	b[1] = l.EffectBlockIndex
	b[2] = byte(l.BlockLoadStatus)
	putLE16(b[3:5], l.RAMPoolAvailable)
	return b
}

func EncodePIDPool(p PIDPool) []byte {
	b := make([]byte, 12)
	b[0] = byte(IDPIDPool.ID)
	putLE16(b[1:3], p.RAMPoolSize)
	b[3] = p.SimultaneousEffectsMax
	b[4] = p.ParamBlockSizeSetEffect
	b[5] = p.ParamBlockSizeSetEnvelope
	b[6] = p.ParamBlockSizeSetCondition
	b[7] = p.ParamBlockSizeSetPeriodic
	b[8] = p.ParamBlockSizeSetConstantForce
	b[9] = p.ParamBlockSizeSetRampForce
	b[10] = p.ParamBlockSizeSetCustomForce
	b[11] = bitflags(p.DeviceManagedPool, p.SharedParameterBlocks, p.IsochronousEnable)
	return b
}

func EncodeRacingWheelState(s RacingWheelState) []byte {
	b := make([]byte, 8)
	b[0] = byte(IDRacingWheelState.ID)
	b[1] = bitflags(s.Buttons[0], s.Buttons[1], s.Buttons[2], s.Buttons[3], s.Buttons[4], s.Buttons[5], s.Buttons[6], s.Buttons[7])
	putLE16(b[2:4], uint16(s.Steering))
	putLE16(b[4:6], uint16(s.Throttle))
	putLE16(b[6:8], uint16(s.Brake))
	return b
}

func EncodePIDState(s PIDState) []byte {
	b := make([]byte, 3)
	b[0] = byte(IDPIDState.ID)
	b[1] = bitflags(s.DevicePaused, s.ActuatorsEnabled, s.SafetySwitch, s.ActuatorsOverrideSwitch, s.ActuatorPower)
	b[2] = bitflags(s.EffectPlaying) | s.EffectBlockIndex<<1
	return b
}
