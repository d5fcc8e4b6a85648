// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"log"

	"github.com/mkevac/debugcharts"
)

// debugchartsStart logs the listen address and launches the live charts
// HTTP listener. It does not inspect whether the listener started.
func debugchartsStart(addr string) {
	log.Printf("wheelsim: serving debug charts on %s", addr)
	debugcharts.Start(addr)
}
