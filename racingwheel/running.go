// Running-effect set
// https://github.com/usbarmory/racingwheel
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package racingwheel

// runningEffect is a (slot index, elapsed ms) pair. Equality for dedup
// purposes is by Index only, per §3.
type runningEffect struct {
	Index     uint8
	ElapsedMS uint32
}

// RunningSet is a small fixed-capacity, dedup-by-index collection of
// currently-playing effects, per §4.E.
type RunningSet struct {
	entries []runningEffect
}

// NewRunningSet returns an empty running set.
func NewRunningSet() *RunningSet {
	return &RunningSet{entries: make([]runningEffect, 0, MaxSimultaneousEffects)}
}

// Insert adds index with ElapsedMS 0. A no-op if index is already present
// or the set is at capacity.
func (r *RunningSet) Insert(index uint8) bool {
	for _, e := range r.entries {
		if e.Index == index {
			return false
		}
	}
	if len(r.entries) >= MaxSimultaneousEffects {
		return false
	}
	r.entries = append(r.entries, runningEffect{Index: index})
	return true
}

// Remove drops index from the set, if present.
func (r *RunningSet) Remove(index uint8) {
	out := r.entries[:0]
	for _, e := range r.entries {
		if e.Index != index {
			out = append(out, e)
		}
	}
	r.entries = out
}

// Clear empties the set, e.g. for StopAllEffects.
func (r *RunningSet) Clear() {
	r.entries = r.entries[:0]
}

// Len returns the number of running entries.
func (r *RunningSet) Len() int {
	return len(r.entries)
}

// Advance adds deltaMS to every entry's elapsed time, then drops entries the
// predicate says should stop (duration elapsed, or stuck incomplete past
// 10s), per §4.C/§4.G.
func (r *RunningSet) Advance(deltaMS uint32, shouldStop func(index uint8, elapsedMS uint32) bool) {
	out := r.entries[:0]
	for _, e := range r.entries {
		e.ElapsedMS += deltaMS
		if !shouldStop(e.Index, e.ElapsedMS) {
			out = append(out, e)
		}
	}
	r.entries = out
}

// Each calls fn for every running (index, elapsedMS) pair, in insertion
// order.
func (r *RunningSet) Each(fn func(index uint8, elapsedMS uint32)) {
	for _, e := range r.entries {
		fn(e.Index, e.ElapsedMS)
	}
}
