package mpt1327

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// When the upstream tx callback returns the idle sentinel, the emitted
// bit stream must be exactly the SYNT idle word, repeated, MSB first.
func TestChannelTransmitsIdleSyncWord(t *testing.T) {
	ch := NewChannel(DefaultChannelConfig(), nil, func() uint64 { return IdleCodeword })

	// Several codeword repeats so the PLL has time to lock and leaves a
	// steady-state stretch of bits to search.
	const repeats = 8
	buf := make([]float32, SamplesPerBit*64*repeats)
	ch.FillTxAudio(buf)

	demod := NewDemodulator()
	var bits []int
	demod.ProcessSamples(buf, func(b int) { bits = append(bits, b) })

	require.GreaterOrEqual(t, len(bits), 64*(repeats-2))
	// The demodulator has no frame sync, so the idle word need not land
	// on a 64-bit boundary at any particular offset; search the
	// steady-state tail for it instead of assuming alignment.
	assert.True(t, containsWord(bits[len(bits)/2:], 0xAAAAAAAAAAAA3B28), "idle sync word should appear in the recovered bitstream once locked")
}

// A payload codeword offered by txcv should arrive at the receiver's
// recv callback with its FCS verified and stripped.
func TestChannelRoundTripPayload(t *testing.T) {
	const payload = uint64(0x0BADC0FFEE00)

	received := make(chan uint64, 64)

	sent := false
	txChan := NewChannel(DefaultChannelConfig(), nil, func() uint64 {
		if sent {
			return SilenceCodeword
		}
		sent = true
		return payload
	})

	rxChan := NewChannel(DefaultChannelConfig(), func(cw uint64) {
		received <- cw
	}, nil)

	// Transmit several codeword periods worth of audio and feed it
	// straight into the receive side (a noise-free loopback).
	buf := make([]float32, SamplesPerBit*64*4)
	txChan.FillTxAudio(buf)
	rxChan.ProcessRxAudio(buf)

	require.NotEmpty(t, received)
	close(received)

	var found bool
	for cw := range received {
		if cw == payload {
			found = true
		}
	}
	assert.True(t, found, "payload should appear among received codewords, even amid silence-induced noise")
}

// Codewords of 0 or 1 carry no FCS (1 is the idle sentinel, 0 is
// silence); anything else must have FCSAdd applied before it is
// transmitted.
func TestChannelNextCodewordWiring(t *testing.T) {
	ch := NewChannel(DefaultChannelConfig(), nil, nil)

	assert.Equal(t, uint64(SilenceCodeword), ch.nextCodeword())

	ch.txcv = func() uint64 { return IdleCodeword }
	assert.Equal(t, uint64(IdleWord), ch.nextCodeword())

	const payload = uint64(0x123456789ABC)
	ch.txcv = func() uint64 { return payload }
	assert.Equal(t, FCSAdd(payload), ch.nextCodeword())
}

// With the bridge enabled, samples appended on rx must surface on tx,
// within one audio block plus ring-buffer latency.
func TestChannelBridgePassesAudioThrough(t *testing.T) {
	ch := NewChannel(DefaultChannelConfig(), nil, func() uint64 { return SilenceCodeword })
	ch.SetBridge(true)

	in := make([]float32, 4800)
	for i := range in {
		in[i] = 0.25
	}
	ch.ProcessRxAudio(in)

	out := make([]float32, 4800)
	ch.FillTxAudio(out)
	assert.Equal(t, in, out)
}

// Disabling the bridge should flush whatever was buffered and then fall
// back to silence (since there is no active transmission).
func TestChannelBridgeDisableFlushesThenSilent(t *testing.T) {
	ch := NewChannel(DefaultChannelConfig(), nil, func() uint64 { return SilenceCodeword })
	ch.SetBridge(true)

	in := []float32{0.1, 0.2, 0.3}
	ch.ProcessRxAudio(in)
	ch.SetBridge(false)

	out := make([]float32, 6)
	ch.FillTxAudio(out)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0, 0, 0}, out)
}

func TestChannelQueueToneAndMorseDelegateToToneQueue(t *testing.T) {
	ch := NewChannel(DefaultChannelConfig(), nil, func() uint64 { return SilenceCodeword })

	require.NoError(t, ch.QueueTone(1000, 10, nil))
	assert.Equal(t, 1, ch.tones.Len())

	require.NoError(t, ch.QueueMorse("E", nil))
	assert.Greater(t, ch.tones.Len(), 1)
}

func TestChannelStartStopActive(t *testing.T) {
	ch := NewChannel(DefaultChannelConfig(), nil, nil)
	assert.False(t, ch.Active())
	ch.Start()
	assert.True(t, ch.Active())
	ch.Stop()
	assert.False(t, ch.Active())
}
