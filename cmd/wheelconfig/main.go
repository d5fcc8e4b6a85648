// Racing wheel configurator CLI
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// The wheelconfig command reads and writes the racing wheel's persisted
// configuration over its hidraw feature-report interface, per §6.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/usbarmory/racingwheel/config"
)

var (
	vid = flag.String("vid", "", "override the USB vendor id to match (default 0xF055)")
	pid = flag.String("pid", "", "override the USB product id to match (default 0x5555)")
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  wheelconfig [-vid 0xF055] [-pid 0x5555] read_config")
	fmt.Fprintln(os.Stderr, "  wheelconfig [-vid 0xF055] [-pid 0x5555] config <field> <value>")
	fmt.Fprintln(os.Stderr, "  wheelconfig [-vid 0xF055] [-pid 0x5555] control <reboot|reset_rotation|write_config>")
	os.Exit(1)
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	os.Args = append([]string{os.Args[0]}, flag.Args()...)

	targetVID, targetPID := uint16(usbVID), uint16(usbPID)
	if *vid != "" {
		v, err := parseUint16(*vid)
		if err != nil {
			log.Fatalf("wheelconfig: invalid -vid: %v", err)
		}
		targetVID = v
	}
	if *pid != "" {
		v, err := parseUint16(*pid)
		if err != nil {
			log.Fatalf("wheelconfig: invalid -pid: %v", err)
		}
		targetPID = v
	}

	dev, err := openByVIDPID(targetVID, targetPID)
	if err != nil {
		log.Fatalf("wheelconfig: %v", err)
	}
	defer dev.Close()

	switch os.Args[1] {
	case "read_config":
		cfg, err := readConfig(dev)
		if err != nil {
			log.Fatalf("wheelconfig: %v", err)
		}
		fmt.Printf("%+v\n", cfg)

	case "config":
		if len(os.Args) != 4 {
			usage()
		}
		cfg, err := readConfig(dev)
		if err != nil {
			log.Fatalf("wheelconfig: %v", err)
		}
		if err := setField(&cfg, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("wheelconfig: %v", err)
		}
		if err := dev.SendFeature(cfg.Bytes()); err != nil {
			log.Fatalf("wheelconfig: %v", err)
		}
		fmt.Println("Success")

	case "control":
		if len(os.Args) != 3 {
			usage()
		}
		var ctl config.Control
		switch os.Args[2] {
		case "reboot":
			ctl = config.Reboot
		case "reset_rotation":
			ctl = config.ResetRotation
		case "write_config":
			ctl = config.WriteConfig
		default:
			usage()
		}
		if err := dev.SendFeature(config.EncodeControl(ctl)); err != nil {
			log.Fatalf("wheelconfig: %v", err)
		}
		fmt.Println("Success")

	default:
		usage()
	}
}

// readConfig issues a GET_REPORT against the config feature report and
// parses the result.
func readConfig(dev *device) (config.Config, error) {
	buf := make([]byte, 1+62) // largest historical shape, §6
	buf[0] = config.ID

	if err := dev.GetFeature(buf); err != nil {
		return config.Config{}, err
	}

	cfg, ok := config.Parse(buf)
	if !ok {
		return config.Config{}, fmt.Errorf("unrecognized config payload length")
	}
	return cfg, nil
}

// setField sets a single named configuration field from its string value,
// mirroring the original configurator's per-option command syntax.
func setField(cfg *config.Config, field, value string) error {
	f32 := func() (float32, error) {
		v, err := strconv.ParseFloat(value, 32)
		return float32(v), err
	}
	u16 := func() (uint16, error) {
		v, err := strconv.ParseUint(value, 10, 16)
		return uint16(v), err
	}

	switch field {
	case "gain":
		v, err := f32()
		cfg.Gain = v
		return err
	case "expo":
		v, err := f32()
		cfg.Expo = v
		return err
	case "derivative_smoothing":
		v, err := f32()
		cfg.DerivativeSmoothing = v
		return err
	case "max_rotation":
		v, err := u16()
		cfg.MaxRotation = v
		return err
	case "spring_gain":
		v, err := f32()
		cfg.SpringGain = v
		return err
	case "spring_coefficient":
		v, err := f32()
		cfg.SpringCoefficient = v
		return err
	case "spring_saturation":
		v, err := f32()
		cfg.SpringSaturation = v
		return err
	case "spring_deadband":
		v, err := f32()
		cfg.SpringDeadband = v
		return err
	case "damper_gain":
		v, err := f32()
		cfg.DamperGain = v
		return err
	case "damper_coefficient":
		v, err := f32()
		cfg.DamperCoefficient = v
		return err
	case "damper_saturation":
		v, err := f32()
		cfg.DamperSaturation = v
		return err
	case "damper_deadband":
		v, err := f32()
		cfg.DamperDeadband = v
		return err
	case "motor_min":
		v, err := f32()
		cfg.MotorMin = v
		return err
	case "motor_max":
		v, err := f32()
		cfg.MotorMax = v
		return err
	case "motor_deadband":
		v, err := f32()
		cfg.MotorDeadband = v
		return err
	case "motor_frequency_hz":
		v, err := u16()
		cfg.MotorFrequencyHz = v
		return err
	case "update_frequency_hz":
		v, err := u16()
		cfg.UpdateFrequencyHz = v
		return err
	}

	return fmt.Errorf("unknown field %q", field)
}
