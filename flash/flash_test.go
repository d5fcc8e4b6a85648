// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package flash

import (
	"testing"

	"github.com/usbarmory/racingwheel/config"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := config.Default()
	want.Gain = 0.75

	page := Encode(want)
	got, err := Decode(page)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeRejectsErasedPage(t *testing.T) {
	var erased [PageSize]byte
	for i := range erased {
		erased[i] = 0xFF
	}

	if _, err := Decode(erased); err != ErrCorrupt {
		t.Errorf("decode erased page = %v, want ErrCorrupt", err)
	}
}

func TestDecodeRejectsCorruptedChecksum(t *testing.T) {
	page := Encode(config.Default())
	page[2] ^= 0xFF

	if _, err := Decode(page); err != ErrCorrupt {
		t.Errorf("decode tampered page = %v, want ErrCorrupt", err)
	}
}
