// Package mpt1327 implements the MPT1327/MPT1343 trunked-radio software
// modem: a 1200 bit/s MSK modulator and demodulator, the frame check
// sequence used to validate 64-bit codewords, and the channel layer that
// multiplexes tones, Morse identification and a receive-to-transmit audio
// bridge around the codeword stream.
package mpt1327

// Fixed configuration constants. These mirror the values baked into the
// original SoftTSC C sources as literals; they are collected here so a
// future parameterised configuration (see config.Defaults) has a single
// place to start from.
const (
	// SampleRate is the audio sample rate the whole modem assumes, in Hz.
	SampleRate = 48000

	// SamplesPerBit is the MSK symbol period: 1200 bit/s at 48 kHz.
	SamplesPerBit = 40

	// MarkFreqHz and SpaceFreqHz are the two MSK tone frequencies.
	MarkFreqHz  = 1800
	SpaceFreqHz = 1200

	// IdleCodeword is the sentinel returned by the upstream tx callback
	// meaning "emit the traffic-channel idle sync word".
	IdleCodeword = 1

	// SilenceCodeword is the sentinel meaning "nothing to send".
	SilenceCodeword = 0

	// SyntWord is the 16-bit traffic-channel sync word (SYNT), used both
	// to build the idle codeword and to identify traffic-channel frames.
	SyntWord = 0x3B28

	// IdleWord is the full 64-bit codeword emitted in place of the
	// sentinel value 1: 48 bits of alternating 1010... followed by SYNT.
	IdleWord uint64 = 0xAAAAAAAAAAAA0000 | SyntWord

	// FCS generator polynomial, post-XOR mask and bit mask, per MPT1327's
	// shortened BCH(47,31) remainder calculation.
	FCSGenerator uint64 = 0x6815
	FCSPostXOR   uint64 = 0x0002
	FCSBitMask   uint64 = 0xFFFE

	// ToneAmplitude is the full-scale fraction applied to tones mixed
	// into the transmit buffer before soft clipping.
	ToneAmplitude = 0.6

	// MorseToneHz is the audio frequency used for synthesised Morse code.
	MorseToneHz = 800

	// MorseUnitSamples is one Morse time unit: a dot's on-time, at 48 kHz.
	MorseUnitSamples = 3200

	// DefaultBridgeCapacity is the default audio bridge ring size, in samples.
	DefaultBridgeCapacity = 10240

	// DefaultToneCapacity is the default tone queue ring size, in items.
	DefaultToneCapacity = 512
)
