// Persisted configuration page
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package flash implements the single erase-able page the configuration
// record is persisted to (§6). The core never opens flash itself; it only
// raises the WriteConfig event (Wheel.WriteConfigEvent) for its host
// wrapper to notice and call Encode/Decode against the platform's flash
// driver.
package flash

import (
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/blake2b"

	"github.com/usbarmory/racingwheel/config"
)

// PageSize is the erase-able flash page size/alignment the configuration
// record is persisted within, per §6.
const PageSize = 1024

// checksumSize is the size of the blake2b-256 digest appended after the
// configuration record.
const checksumSize = 32

// ErrCorrupt is returned by Decode when the stored checksum does not match
// the page contents: a torn write or an unprogrammed (erased) page.
var ErrCorrupt = errors.New("flash: page checksum mismatch")

// Encode serializes cfg into a PageSize-aligned page: a length-prefixed
// configuration record followed by its blake2b-256 checksum, zero-padded
// to PageSize.
func Encode(cfg config.Config) [PageSize]byte {
	var page [PageSize]byte

	record := cfg.Bytes()
	binary.LittleEndian.PutUint16(page[0:2], uint16(len(record)))
	copy(page[2:], record)

	sum := blake2b.Sum256(page[:2+len(record)])
	copy(page[2+len(record):2+len(record)+checksumSize], sum[:])

	return page
}

// Decode parses a page written by Encode, verifying its checksum before
// returning the configuration record. ErrCorrupt is returned (and best
// effort, per §7, swallowed by callers that have no recovery path beyond
// falling back to config.Default) if the checksum does not match.
func Decode(page [PageSize]byte) (config.Config, error) {
	n := int(binary.LittleEndian.Uint16(page[0:2]))
	if n <= 0 || 2+n+checksumSize > PageSize {
		return config.Config{}, ErrCorrupt
	}

	record := page[2 : 2+n]
	wantSum := page[2+n : 2+n+checksumSize]

	gotSum := blake2b.Sum256(page[:2+n])
	if !equal(gotSum[:], wantSum) {
		return config.Config{}, ErrCorrupt
	}

	cfg, ok := config.Parse(record)
	if !ok {
		return config.Config{}, ErrCorrupt
	}

	return cfg, nil
}

func equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
