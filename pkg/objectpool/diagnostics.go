package objectpool

import (
	"sync/atomic"

	gojson "github.com/goccy/go-json"
)

// Diagnostics tracks pool activity with independent atomic counters.
// Counters are advisory: they have no ordering relationship to each other or
// to buffer state, so a reader may observe them out of sequence. Recording is
// a single atomic add and only happens while diagnostics are enabled, so the
// counters never become a contention point on the checkout path.
type Diagnostics struct {
	enabled atomic.Bool

	hits          atomic.Uint64
	misses        atomic.Uint64
	overflows     atomic.Uint64
	returns       atomic.Uint64
	resetFailures atomic.Uint64
	created       atomic.Uint64
	destroyed     atomic.Uint64
}

// Snapshot is a point-in-time copy of the diagnostic counters.
type Snapshot struct {
	Enabled          bool   `json:"enabled"`
	HitCount         uint64 `json:"hit_count"`
	MissCount        uint64 `json:"miss_count"`
	OverflowCount    uint64 `json:"overflow_count"`
	ReturnedCount    uint64 `json:"returned_count"`
	ResetFailedCount uint64 `json:"reset_failed_count"`
	TotalCreated     uint64 `json:"total_created"`
	TotalDestroyed   uint64 `json:"total_destroyed"`
}

// String renders the snapshot as JSON for logs and debug output.
func (s Snapshot) String() string {
	data, err := gojson.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func newDiagnostics(enabled bool) *Diagnostics {
	d := &Diagnostics{}
	d.enabled.Store(enabled)
	return d
}

// Enable turns counter recording on.
func (d *Diagnostics) Enable() {
	d.enabled.Store(true)
}

// Disable turns counter recording off. Existing counts are retained.
func (d *Diagnostics) Disable() {
	d.enabled.Store(false)
}

// Enabled reports whether counters are being recorded.
func (d *Diagnostics) Enabled() bool {
	return d.enabled.Load()
}

// HitCount returns the number of checkouts served from the pool.
func (d *Diagnostics) HitCount() uint64 { return d.hits.Load() }

// MissCount returns the number of checkouts that constructed a new object.
func (d *Diagnostics) MissCount() uint64 { return d.misses.Load() }

// OverflowCount returns the number of returns destroyed at capacity.
func (d *Diagnostics) OverflowCount() uint64 { return d.overflows.Load() }

// ReturnedCount returns the number of objects returned to the pool.
func (d *Diagnostics) ReturnedCount() uint64 { return d.returns.Load() }

// ResetFailedCount returns the number of objects rejected by reset or
// validation hooks.
func (d *Diagnostics) ResetFailedCount() uint64 { return d.resetFailures.Load() }

// TotalCreated returns the number of factory constructions.
func (d *Diagnostics) TotalCreated() uint64 { return d.created.Load() }

// TotalDestroyed returns the number of permanently destroyed objects.
func (d *Diagnostics) TotalDestroyed() uint64 { return d.destroyed.Load() }

// GetSnapshot returns a point-in-time copy of all counters.
func (d *Diagnostics) GetSnapshot() Snapshot {
	return Snapshot{
		Enabled:          d.enabled.Load(),
		HitCount:         d.hits.Load(),
		MissCount:        d.misses.Load(),
		OverflowCount:    d.overflows.Load(),
		ReturnedCount:    d.returns.Load(),
		ResetFailedCount: d.resetFailures.Load(),
		TotalCreated:     d.created.Load(),
		TotalDestroyed:   d.destroyed.Load(),
	}
}

// ResetCounters zeroes every counter without changing the enabled state.
func (d *Diagnostics) ResetCounters() {
	d.hits.Store(0)
	d.misses.Store(0)
	d.overflows.Store(0)
	d.returns.Store(0)
	d.resetFailures.Store(0)
	d.created.Store(0)
	d.destroyed.Store(0)
}

func (d *Diagnostics) incrHit() {
	if d.enabled.Load() {
		d.hits.Add(1)
	}
}

func (d *Diagnostics) incrMiss() {
	if d.enabled.Load() {
		d.misses.Add(1)
	}
}

func (d *Diagnostics) incrOverflow() {
	if d.enabled.Load() {
		d.overflows.Add(1)
	}
}

func (d *Diagnostics) incrReturn() {
	if d.enabled.Load() {
		d.returns.Add(1)
	}
}

func (d *Diagnostics) incrResetFailure() {
	if d.enabled.Load() {
		d.resetFailures.Add(1)
	}
}

func (d *Diagnostics) incrCreated() {
	if d.enabled.Load() {
		d.created.Add(1)
	}
}

func (d *Diagnostics) incrDestroyed() {
	if d.enabled.Load() {
		d.destroyed.Add(1)
	}
}
