// hidraw feature-report transport
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// usbVID/usbPID are the racing wheel's USB vendor/product ids, per §6.
const (
	usbVID = 0xF055
	usbPID = 0x5555
)

// hidraw ioctl request codes, computed the way <linux/hidraw.h> defines
// them over <asm-generic/ioctl.h>'s _IOC macro. x/sys/unix does not name
// these (they are Linux-HID-specific, not general-purpose), so they are
// derived here from the same bit layout unix.Ioctl* helpers assume.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14
	iocDirBits  = 2

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2

	hidIOCType = 'H'
)

func ioc(dir, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (hidIOCType << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

// hidIOCSFeature/hidIOCGFeature are HIDIOCSFEATURE(len)/HIDIOCGFEATURE(len):
// variable-length ioctls whose size field encodes the feature report
// buffer length, per the hidraw feature-report protocol.
func hidIOCSFeature(length int) uintptr {
	return ioc(iocWrite|iocRead, 0x06, uintptr(length))
}

func hidIOCGFeature(length int) uintptr {
	return ioc(iocWrite|iocRead, 0x07, uintptr(length))
}

// hidrawInfo mirrors struct hidraw_devinfo from <linux/hidraw.h>.
type hidrawInfo struct {
	BusType uint32
	Vendor  int16
	Product int16
}

// device wraps an open hidraw character device.
type device struct {
	f *os.File
}

// openByVIDPID scans /sys/class/hidraw for a node whose HIDIOCGRAWINFO
// reports the given vendor/product pair, and opens /dev/<name>.
func openByVIDPID(vid, pid uint16) (*device, error) {
	entries, err := os.ReadDir("/sys/class/hidraw")
	if err != nil {
		return nil, fmt.Errorf("enumerate hidraw: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		f, err := os.OpenFile(filepath.Join("/dev", name), os.O_RDWR, 0)
		if err != nil {
			continue
		}

		var info hidrawInfo
		if err := ioctlGet(f, hidIOCRawInfo, unsafe.Pointer(&info)); err != nil {
			f.Close()
			continue
		}

		if uint16(info.Vendor) == vid && uint16(info.Product) == pid {
			return &device{f: f}, nil
		}
		f.Close()
	}

	return nil, fmt.Errorf("no hidraw device matching VID %#04x PID %#04x", vid, pid)
}

// hidIOCRawInfo is HIDIOCGRAWINFO: _IOR('H', 0x03, struct hidraw_devinfo).
var hidIOCRawInfo = ioc(iocRead, 0x03, unsafe.Sizeof(hidrawInfo{}))

func ioctlGet(f *os.File, req uintptr, p unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(p))
	if errno != 0 {
		return errno
	}
	return nil
}

// SendFeature issues a SET_REPORT feature-report write, per §6.
func (d *device) SendFeature(report []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), hidIOCSFeature(len(report)), uintptr(unsafe.Pointer(&report[0])))
	if errno != 0 {
		return fmt.Errorf("HIDIOCSFEATURE: %w", errno)
	}
	return nil
}

// GetFeature issues a GET_REPORT feature-report read. buf[0] must hold the
// target report id on entry, per the hidraw feature-report protocol.
func (d *device) GetFeature(buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), hidIOCGFeature(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return fmt.Errorf("HIDIOCGFEATURE: %w", errno)
	}
	return nil
}

func (d *device) Close() error {
	return d.f.Close()
}

// parseUint16 parses a decimal or 0x-prefixed hex uint16, used for the
// rarely-needed --vid/--pid override flags.
func parseUint16(s string) (uint16, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	return uint16(v), err
}
