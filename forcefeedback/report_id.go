// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package forcefeedback

// ReportKind distinguishes the three USB HID report classes PID reports are
// carried over.
type ReportKind int

const (
	KindInput ReportKind = iota
	KindOutput
	KindFeature
)

// ReportID names a report by class and id byte.
type ReportID struct {
	Kind ReportKind
	ID   uint8
}

// Report ids, per §4.H / §6. Note id 0x09 is intentionally unused on the
// Output class, matching the reference report map.
var (
	IDSetEffect           = ReportID{KindOutput, 0x01}
	IDSetEnvelope         = ReportID{KindOutput, 0x02}
	IDSetCondition        = ReportID{KindOutput, 0x03}
	IDSetPeriodic         = ReportID{KindOutput, 0x04}
	IDSetConstantForce    = ReportID{KindOutput, 0x05}
	IDSetRampForce        = ReportID{KindOutput, 0x06}
	IDCustomForceData     = ReportID{KindOutput, 0x07}
	IDDownloadForceSample = ReportID{KindOutput, 0x08}
	IDSetEffectOperation  = ReportID{KindOutput, 0x0A}
	IDPIDBlockFree        = ReportID{KindOutput, 0x0B}
	IDPIDDeviceControl    = ReportID{KindOutput, 0x0C}
	IDDeviceGain          = ReportID{KindOutput, 0x0D}
	IDSetCustomForce      = ReportID{KindOutput, 0x0E}
	IDPIDPoolMove         = ReportID{KindOutput, 0x0F}

	IDCreateNewEffect = ReportID{KindFeature, 0x01}
	IDPIDBlockLoad    = ReportID{KindFeature, 0x02}
	IDPIDPool         = ReportID{KindFeature, 0x03}
	IDConfig          = ReportID{KindFeature, 0x04}

	IDRacingWheelState = ReportID{KindInput, 0x01}
	IDPIDState         = ReportID{KindInput, 0x02}
)
