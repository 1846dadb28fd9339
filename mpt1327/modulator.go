package mpt1327

import "math"

// NextCodewordFunc supplies the next 64-bit codeword to transmit. It is
// called once per codeword period, when all 64 bits of the previous
// codeword have been sent, and may return zero if there is nothing to
// send.
type NextCodewordFunc func() uint64

// Modulator generates continuous-phase 2-FSK (MSK) audio from a lazy
// stream of 64-bit codewords. Phase is carried across bit boundaries so
// the waveform never clicks at a symbol edge: this is the defining
// property of minimum-shift keying.
type Modulator struct {
	phase   int     // 1..SamplesPerBit
	fs      float64 // current frequency factor (1.00 = 1200 Hz for a 1 bit, 1.50 = 1800 Hz for a 0 bit)
	padj    float64 // accumulated phase offset, in [0, 1)
	current uint64  // active codeword
	bitmask uint64  // selects the next bit of current, MSB-first
}

// NewModulator returns a Modulator ready to emit silence; it requests
// its first codeword once SamplesPerBit samples have been generated,
// matching the zero-initialized state of the original implementation.
func NewModulator() *Modulator {
	return &Modulator{}
}

// Fill advances the modulator by len(buf) samples, calling next once per
// 64 bit periods to obtain the codeword being transmitted. Samples belonging
// to an all-zero (silent) codeword are left untouched, so a caller may
// pre-populate buf with tone or bridge audio and have it show through
// during gaps between transmissions — this mirrors the original
// implementation, where the sound-mixing callback runs before the
// modulator's own sample loop.
func (m *Modulator) Fill(buf []float32, next NextCodewordFunc) {
	for i := range buf {
		m.phase++
		if m.phase > SamplesPerBit {
			m.phase = 1

			if m.bitmask == 0 {
				m.bitmask = 0x8000000000000000
				m.current = 0
				if next != nil {
					m.current = next()
				}
			}

			m.padj += m.fs
			m.padj -= math.Floor(m.padj)

			if m.current&m.bitmask != 0 {
				m.fs = 1.00
			} else {
				m.fs = 1.50
			}
			m.bitmask >>= 1
		}

		if m.current != 0 {
			buf[i] = float32(math.Sin(2.0 * math.Pi * (m.fs*(float64(m.phase)/float64(SamplesPerBit)) + m.padj)))
		}
	}
}
