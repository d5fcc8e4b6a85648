// Fixed-capacity PID effect pool
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package racingwheel implements the force feedback racing wheel core: the
// effect pool, the running-effect set, the wheel state machine, and the
// host-report dispatch table that drives them.
package racingwheel

import "github.com/usbarmory/racingwheel/forcefeedback"

// MaxEffects is the fixed number of effect slots the pool holds.
const MaxEffects = 16

// MaxSimultaneousEffects bounds the running-effect set's capacity.
const MaxSimultaneousEffects = 8

// CustomDataBufferSize is the scratch space reserved for custom-force
// samples. The kernels never read from it (§4.D, §9): it exists so hosts
// that upload custom waveform samples get a pool allocation to write into.
const CustomDataBufferSize = 4096

// setEffectRAMSize is the in-pool byte size of a SetEffect record, used for
// the pool's capacity accounting (§4.D "available").
const setEffectRAMSize = 19

// Pool is the fixed-capacity set of effect slots plus the custom-force
// scratch buffer, per §3/§4.D.
type Pool struct {
	slots             [MaxEffects]*forcefeedback.Slot
	customDataBuffer  [CustomDataBufferSize]byte
	customDataUsed    int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// NewEffect allocates the smallest free slot index, returning the 1-based
// index and true on success, or false if the pool is full.
func (p *Pool) NewEffect() (uint8, bool) {
	for i, s := range p.slots {
		if s == nil {
			p.slots[i] = &forcefeedback.Slot{}
			return uint8(i + 1), true
		}
	}
	return 0, false
}

// FreeEffect clears the slot at the given 1-based index. Returns false if
// the index is out of range.
func (p *Pool) FreeEffect(index uint8) bool {
	i := int(index) - 1
	if i < 0 || i >= len(p.slots) {
		return false
	}
	p.slots[i] = nil
	return true
}

// GetEffect returns the slot at the given 1-based index, or nil if empty or
// out of range. The returned slot is mutable: the pool retains exclusive
// ownership and callers mutate through this pointer rather than holding a
// separate copy (§9 "pointers to pool slots").
func (p *Pool) GetEffect(index uint8) *forcefeedback.Slot {
	i := int(index) - 1
	if i < 0 || i >= len(p.slots) {
		return nil
	}
	return p.slots[i]
}

// Available returns the free-slot byte capacity plus unused custom-buffer
// bytes, per §4.D.
func (p *Pool) Available() int {
	free := 0
	for _, s := range p.slots {
		if s == nil {
			free++
		}
	}
	return free*setEffectRAMSize + (len(p.customDataBuffer) - p.customDataUsed)
}

// PoolSize returns the constant total pool capacity in bytes.
func (p *Pool) PoolSize() int {
	return len(p.slots)*setEffectRAMSize + len(p.customDataBuffer)
}

// WriteCustomData accepts (but does not retain for kernel use) custom force
// sample bytes at the given buffer offset, per §4.D/§9.
func (p *Pool) WriteCustomData(offset uint16, data []byte) bool {
	start := int(offset)
	if start < 0 || start+len(data) > len(p.customDataBuffer) {
		return false
	}
	copy(p.customDataBuffer[start:], data)
	if end := start + len(data); end > p.customDataUsed {
		p.customDataUsed = end
	}
	return true
}
