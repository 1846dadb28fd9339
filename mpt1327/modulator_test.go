package mpt1327

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulatorSilenceWhenNoCodewords(t *testing.T) {
	m := NewModulator()
	buf := make([]float32, SamplesPerBit*20)

	m.Fill(buf, func() uint64 { return 0 })

	var sumSquares float64
	for _, s := range buf {
		sumSquares += float64(s) * float64(s)
	}
	rms := math.Sqrt(sumSquares / float64(len(buf)))
	assert.Less(t, rms, 1e-4, "silence should stay silent")
}

func TestModulatorOutputBounded(t *testing.T) {
	m := NewModulator()
	buf := make([]float32, SamplesPerBit*200)

	m.Fill(buf, func() uint64 { return 0xAAAAAAAAAAAA3B28 })

	for i, s := range buf {
		assert.LessOrEqualf(t, math.Abs(float64(s)), 1.0+1e-6, "sample %d out of range: %v", i, s)
	}
}

func TestModulatorRMSWhileActive(t *testing.T) {
	m := NewModulator()
	buf := make([]float32, SamplesPerBit*400)

	m.Fill(buf, func() uint64 { return 0xAAAAAAAAAAAA3B28 })

	var sumSquares float64
	for _, s := range buf {
		sumSquares += float64(s) * float64(s)
	}
	rms := math.Sqrt(sumSquares / float64(len(buf)))
	assert.GreaterOrEqual(t, rms, 0.6)
}

// The instantaneous signal must never jump by more than the maximum
// possible phase slew of the faster (mark, 1800 Hz) tone between two
// adjacent samples.
func TestModulatorPhaseContinuity(t *testing.T) {
	m := NewModulator()
	buf := make([]float32, SamplesPerBit*500)

	m.Fill(buf, func() uint64 { return 0xF0F0F0F0F0F03B28 })

	const fMax = 1800.0
	maxStep := 2*math.Pi*fMax/SampleRate + 0.05

	for i := 1; i < len(buf); i++ {
		step := math.Abs(float64(buf[i]) - float64(buf[i-1]))
		// A unit sine at fMax changes by at most 2*pi*fMax/SampleRate per
		// sample, so a phase discontinuity shows up as a larger jump.
		assert.LessOrEqualf(t, step, maxStep, "sample %d: suspiciously large jump %v", i, step)
	}
}

// next_codeword is polled once every 64 bit periods -- one call consumes
// a full codeword, MSB first, one bit per 40-sample period -- so filling
// exactly 64 bit periods should draw exactly one codeword, and a 65th
// bit period should draw the next.
func TestModulatorRequestsOneCodewordPerCodewordPeriod(t *testing.T) {
	m := NewModulator()
	buf := make([]float32, SamplesPerBit*64)

	calls := 0
	m.Fill(buf, func() uint64 {
		calls++
		return 0xAAAAAAAAAAAA3B28
	})
	require.Equal(t, 1, calls, "next_codeword should be invoked once per 64-bit codeword")

	// The first codeword is fetched one bit-period after start (the
	// zero-initialised phase/bitmask need a full 40-sample period before
	// the first wrap), so codeword fetches land at absolute sample
	// 40·(64N+1). The second fetch is therefore at sample 2600, one
	// sample beyond the 2560 already consumed plus another full
	// bit-period: feed 41 samples, not 40, to actually reach it.
	buf2 := make([]float32, SamplesPerBit+1)
	m.Fill(buf2, func() uint64 {
		calls++
		return 0xAAAAAAAAAAAA3B28
	})
	require.Equal(t, 2, calls, "a 65th bit period should draw the next codeword")
}
