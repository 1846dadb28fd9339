package mpt1327

import "sync/atomic"

// Bridge is a fixed-capacity ring buffer carrying received audio
// through to the transmit path. The rx audio callback appends samples
// to it when enabled; the tx audio callback drains from it ahead of
// tone mixing.
//
// Write (rx) and read (tx) run on different call sites but are never
// concurrent with each other in this design: both are driven from the
// single audio callback the channel wires up (§5 of the design — the
// audio thread is the only writer of read/write indices). Ready is kept
// as an atomic counter so a future split between rx and tx goroutines
// would not need to change this type's contract.
type Bridge struct {
	buf    []float32
	rd, wr int
	ready  atomic.Int64

	enabled atomic.Bool
}

// NewBridge returns a Bridge with room for capacity samples.
func NewBridge(capacity int) *Bridge {
	return &Bridge{buf: make([]float32, capacity)}
}

// SetEnabled turns the bridge on or off. When disabled, Write becomes a
// no-op (new audio is not buffered) but Drain still flushes whatever is
// already queued before falling back to silence.
func (b *Bridge) SetEnabled(enabled bool) {
	b.enabled.Store(enabled)
}

// Enabled reports whether the bridge currently accepts new audio.
func (b *Bridge) Enabled() bool {
	return b.enabled.Load()
}

// Write appends samples to the ring if the bridge is enabled. If the
// ring is full, the oldest, not-yet-drained samples are overwritten —
// the bridge favours freshness over completeness, per spec: "samples
// are overwritten; no signal to caller."
func (b *Bridge) Write(samples []float32) {
	if !b.enabled.Load() {
		return
	}

	cap := len(b.buf)
	for _, s := range samples {
		b.buf[b.wr] = s
		b.wr = (b.wr + 1) % cap
	}

	ready := b.ready.Add(int64(len(samples)))
	if ready > int64(cap) {
		// Overrun: the reader has fallen behind by more than a full
		// buffer. Catch the read pointer up so ready never exceeds
		// capacity, per the ring invariant in spec.md §3.
		overrun := ready - int64(cap)
		b.rd = (b.rd + int(overrun)) % cap
		b.ready.Store(int64(cap))
	}
}

// Drain fills buf with up to len(buf) samples read from the ring,
// zero-filling any remainder. It drains len(buf) samples if that many
// are ready; if fewer are ready and the bridge is disabled, it flushes
// whatever is left; if fewer are ready and the bridge is enabled, it
// drains nothing this call and leaves buf silent, waiting for more
// audio to arrive.
func (b *Bridge) Drain(buf []float32) {
	ready := int(b.ready.Load())
	n := len(buf)

	var take int
	switch {
	case ready >= n:
		take = n
	case !b.enabled.Load():
		take = ready
	default:
		take = 0
	}

	capN := len(b.buf)
	for i := 0; i < take; i++ {
		buf[i] = b.buf[b.rd]
		b.rd = (b.rd + 1) % capN
	}
	for i := take; i < n; i++ {
		buf[i] = 0
	}

	if take > 0 {
		b.ready.Add(int64(-take))
	}
}
