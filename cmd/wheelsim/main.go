// Racing wheel force feedback simulator
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// The wheelsim command drives a racingwheel.Wheel core against a synthetic
// steering input, ticking it at the configured update frequency and
// printing the resulting force command. It exists so the core can be
// exercised and tuned off-target, without USB hardware or a HID host.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/usbarmory/racingwheel/config"
	"github.com/usbarmory/racingwheel/forcefeedback"
	"github.com/usbarmory/racingwheel/racingwheel"
)

var (
	chartsAddr = flag.String("charts", "", "serve live debugcharts runtime charts on the given address (e.g. :1234)")
	duration   = flag.Duration("duration", 10*time.Second, "how long to run the simulation")
)

// sineSteering returns a synthetic steering trace, in degrees, oscillating
// across the full lock-to-lock range over a 4 second period.
func sineSteering(cfg config.Config, t time.Duration) float64 {
	period := 4 * time.Second
	phase := 2 * math.Pi * float64(t) / float64(period)
	return float64(cfg.MaxRotation) / 2 * math.Sin(phase)
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *chartsAddr != "" {
		go debugchartsStart(*chartsAddr)
	}

	cfg := config.Default()
	w := racingwheel.New(cfg)

	// A real host always sends these two reports during enumeration; the
	// simulator has no host, so seed them directly.
	w.HandleOutput(forcefeedback.IDDeviceGain.ID,
		forcefeedback.EncodeDeviceGain(forcefeedback.DeviceGain{DeviceGain: forcefeedback.ForceLogicalMax}))
	w.HandleOutput(forcefeedback.IDPIDDeviceControl.ID,
		forcefeedback.EncodePIDDeviceControl(forcefeedback.PIDDeviceControl{DeviceControl: forcefeedback.EnableActuators}))

	if cfg.UpdateFrequencyHz == 0 {
		log.Fatal("wheelsim: update_frequency_hz is zero")
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.UpdateFrequencyHz), 1)
	tickInterval := time.Second / time.Duration(cfg.UpdateFrequencyHz)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		elapsed := time.Since(start)
		degrees := sineSteering(cfg, elapsed)
		w.SetSteering(degrees)
		w.Advance(uint32(tickInterval.Milliseconds()))

		f := w.Force()
		log.Printf("t=%8s steering=%+7.2fdeg force=%+.3f", elapsed.Round(time.Millisecond), degrees, f)
	}
}
