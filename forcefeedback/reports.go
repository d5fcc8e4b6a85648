// Force feedback PID report records
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package forcefeedback implements the USB HID PID class report records,
// their wire/in-pool codecs, the effect slot record, and the force
// synthesis kernels of a racing wheel force feedback engine.
package forcefeedback

import "fmt"

// ForceLogicalMax is the wire quantization denominator for all "force"
// fields (gain, magnitude, offsets, coefficients, saturations, deadband):
// range ±1 is full scale.
const ForceLogicalMax = 10_000

// SteeringLogicalMax is the wire quantization denominator for the steering
// axis: ±1 represents one full unit of axis travel.
const SteeringLogicalMax = 10_000

// EffectType is the closed set of PID effect types, report-byte-compatible.
type EffectType uint8

const (
	ConstantForce EffectType = 1
	Ramp          EffectType = 2
	Square        EffectType = 3
	Sine          EffectType = 4
	Triangle      EffectType = 5
	SawtoothUp    EffectType = 6
	SawtoothDown  EffectType = 7
	Spring        EffectType = 8
	Damper        EffectType = 9
	Inertia       EffectType = 10
	Friction      EffectType = 11
	CustomForceData EffectType = 12
)

// ParseEffectType validates a wire byte against the closed effect type set.
func ParseEffectType(b byte) (EffectType, bool) {
	switch EffectType(b) {
	case ConstantForce, Ramp, Square, Sine, Triangle, SawtoothUp, SawtoothDown,
		Spring, Damper, Inertia, Friction, CustomForceData:
		return EffectType(b), true
	}
	return 0, false
}

func (t EffectType) String() string {
	switch t {
	case ConstantForce:
		return "ConstantForce"
	case Ramp:
		return "Ramp"
	case Square:
		return "Square"
	case Sine:
		return "Sine"
	case Triangle:
		return "Triangle"
	case SawtoothUp:
		return "SawtoothUp"
	case SawtoothDown:
		return "SawtoothDown"
	case Spring:
		return "Spring"
	case Damper:
		return "Damper"
	case Inertia:
		return "Inertia"
	case Friction:
		return "Friction"
	case CustomForceData:
		return "CustomForceData"
	default:
		return fmt.Sprintf("EffectType(%d)", uint8(t))
	}
}

// EffectOperation is the operation selector of the EffectOperation report.
type EffectOperation uint8

const (
	EffectStart     EffectOperation = 1
	EffectStartSolo EffectOperation = 2
	EffectStop      EffectOperation = 3
)

// ParseEffectOperation validates a wire byte against the closed set.
func ParseEffectOperation(b byte) (EffectOperation, bool) {
	switch EffectOperation(b) {
	case EffectStart, EffectStartSolo, EffectStop:
		return EffectOperation(b), true
	}
	return 0, false
}

// DeviceControl is the control selector of the PIDDeviceControl report.
type DeviceControl uint8

const (
	EnableActuators  DeviceControl = 1
	DisableActuators DeviceControl = 2
	StopAllEffects   DeviceControl = 3
	DeviceReset      DeviceControl = 4
	DevicePause      DeviceControl = 5
	DeviceContinue   DeviceControl = 6
)

// ParseDeviceControl validates a wire byte against the closed set.
func ParseDeviceControl(b byte) (DeviceControl, bool) {
	switch DeviceControl(b) {
	case EnableActuators, DisableActuators, StopAllEffects, DeviceReset, DevicePause, DeviceContinue:
		return DeviceControl(b), true
	}
	return 0, false
}

// BlockLoadStatus is the status byte returned by a PIDBlockLoad GET.
type BlockLoadStatus uint8

const (
	Success BlockLoadStatus = 0x01
	Full    BlockLoadStatus = 0x02
	Error   BlockLoadStatus = 0x03
)

// EffectDescriptor is the common effect descriptor (the SetEffect report,
// minus the leading effect_block_index which the pool carries implicitly).
type EffectDescriptor struct {
	EffectType                        EffectType
	Duration                          uint16 // ms, 0 means "unset" on the wire; nil-equivalent is DurationSet == false
	DurationSet                       bool
	TriggerRepeatInterval              uint16
	SamplePeriod                      uint16
	SamplePeriodSet                   bool
	Gain                              int16 // Q-format, denom ForceLogicalMax
	TriggerButton                     uint8
	AxisXEnable                       bool
	AxisYEnable                       bool
	DirectionEnable                   bool
	DirectionInstance1                uint8
	DirectionInstance2                uint8
	StartDelay                        uint16
	TypeSpecificBlockOffsetInstance1 uint16
	TypeSpecificBlockOffsetInstance2 uint16
}

// SetEnvelope is the envelope parameter block (§3, §6).
type SetEnvelope struct {
	AttackLevel int16 // Q-format [0, ForceLogicalMax]
	FadeLevel   int16
	AttackTime  uint32 // ms
	FadeTime    uint32 // ms
}

// SetCondition is the condition parameter block (spring/damper/inertia).
type SetCondition struct {
	ParameterBlockOffset              uint8 // 0 or 1: which of the two slots this fills
	TypeSpecificBlockOffsetInstance1 uint8
	TypeSpecificBlockOffsetInstance2 uint8
	CPOffset                         int16
	PositiveCoefficient              int16
	NegativeCoefficient              int16
	PositiveSaturation               int16
	NegativeSaturation               int16
	DeadBand                         int16
}

// SetPeriodic is the periodic waveform parameter block.
type SetPeriodic struct {
	Magnitude int16
	Offset    int16
	Phase     uint16 // hundredths of a degree, 0..36_000
	Period    uint32 // ms, > 0
}

// SetConstantForce is the constant-force parameter block.
type SetConstantForce struct {
	Magnitude int16
}

// SetRampForce is the ramp-force parameter block.
type SetRampForce struct {
	RampStart int16
	RampEnd   int16
}

// CustomForceDataReport is the custom force sample-upload report (its name
// differs from the CustomForceData effect type it carries samples for).
type CustomForceDataReport struct {
	Offset    uint16
	ByteCount uint8
	Data      [12]byte
}

// SetCustomForce is the custom-force parameter block (offset + count into
// the pool's custom data buffer).
type SetCustomForce struct {
	CustomForceDataOffset uint16
	SampleCount           uint16
}

// DownloadForceSample carries a single host-synthesized force sample.
type DownloadForceSample struct {
	Steering int8
	Throttle uint8
}

// SetEffectOperation starts, solo-starts, or stops a running effect.
type SetEffectOperation struct {
	EffectOperation EffectOperation
	LoopCount       uint8
}

// PIDBlockFree frees an allocated slot.
type PIDBlockFree struct{}

// PIDDeviceControl carries a device-wide control selector.
type PIDDeviceControl struct {
	DeviceControl DeviceControl
}

// DeviceGain carries the host-commanded master gain.
type DeviceGain struct {
	DeviceGain int16
}

// PIDPoolMove is accepted but has no side effect.
type PIDPoolMove struct {
	MoveSource      uint16
	MoveDestination uint16
	MoveLength      uint16
}

// CreateNewEffect records a pending slot-allocation request.
type CreateNewEffect struct {
	EffectType EffectType
	ByteCount  uint16
}

// PIDBlockLoad is the GET response to a pending CreateNewEffect.
type PIDBlockLoad struct {
	EffectBlockIndex  uint8
	BlockLoadStatus   BlockLoadStatus
	RAMPoolAvailable  uint16
}

// PIDPool emits the device's capacity constants.
type PIDPool struct {
	RAMPoolSize                    uint16
	SimultaneousEffectsMax         uint8
	ParamBlockSizeSetEffect        uint8
	ParamBlockSizeSetEnvelope      uint8
	ParamBlockSizeSetCondition     uint8
	ParamBlockSizeSetPeriodic      uint8
	ParamBlockSizeSetConstantForce uint8
	ParamBlockSizeSetRampForce     uint8
	ParamBlockSizeSetCustomForce   uint8
	DeviceManagedPool              bool
	SharedParameterBlocks          bool
	IsochronousEnable              bool
}

// RacingWheelState is the current axis + button input report.
type RacingWheelState struct {
	Buttons  [8]bool
	Steering int16 // Q-format, denom SteeringLogicalMax
	Throttle int16 // Q-format, denom ForceLogicalMax
	Brake    int16 // Q-format, denom ForceLogicalMax
}

// PIDState is the current device state bits input report.
type PIDState struct {
	DevicePaused             bool
	ActuatorsEnabled         bool
	SafetySwitch             bool
	ActuatorsOverrideSwitch  bool
	ActuatorPower            bool
	EffectPlaying            bool
	EffectBlockIndex         uint8
}
