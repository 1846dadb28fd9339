package mpt1327

import "sync/atomic"

// RecvFunc is called whenever a 64-bit codeword passes its frame check
// sequence on receive. cw carries only the 48-bit payload (the FCS has
// already been stripped and verified).
type RecvFunc func(cw uint64)

// TxcvFunc is polled once per codeword boundary for the next codeword to
// transmit. Returning 0 means silence, 1 means "emit the idle sync
// word", and any other value is treated as a 48-bit payload that the
// channel will append a frame check sequence to before transmission.
type TxcvFunc func() uint64

// ChannelConfig holds the tunable constants a Channel is built with; see
// config.Defaults for the values taken from the original C project.
type ChannelConfig struct {
	BridgeCapacity int
	ToneCapacity   int
}

// DefaultChannelConfig returns the fixed constants the original
// implementation used as literals.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		BridgeCapacity: DefaultBridgeCapacity,
		ToneCapacity:   DefaultToneCapacity,
	}
}

// Channel is the integration point of the modem: it owns the modulator,
// demodulator, tone queue and audio bridge, and wires the callbacks the
// DSP core needs (next codeword to send, bit received, rx/tx audio) to
// the FCS framing and side-channel logic described in spec.md §4.7.
//
// Two logical contexts drive a Channel: the audio thread, which is the
// only caller of ProcessRxAudio/FillTxAudio (and therefore the only
// writer of modem/demod state and the ring read indices), and control
// threads, which call Start/Stop/QueueTone/QueueMorse/SetBridge and only
// ever touch ring write indices and the bridge's enabled flag. See
// spec.md §5.
type Channel struct {
	mod   *Modulator
	demod *Demodulator

	rxShiftReg uint64
	recv       RecvFunc
	txcv       TxcvFunc

	tones  *ToneQueue
	bridge *Bridge

	active atomic.Bool
}

// NewChannel builds a Channel around the given recv/txcv collaborators.
// Either may be nil; a nil txcv is treated as always returning 0
// (silence), and a nil recv simply discards verified codewords.
func NewChannel(cfg ChannelConfig, recv RecvFunc, txcv TxcvFunc) *Channel {
	return &Channel{
		mod:    NewModulator(),
		demod:  NewDemodulator(),
		recv:   recv,
		txcv:   txcv,
		tones:  NewToneQueue(cfg.ToneCapacity),
		bridge: NewBridge(cfg.BridgeCapacity),
	}
}

// Start activates the channel. Once started, ProcessRxAudio/FillTxAudio
// may be driven by the audio backend. In-flight tones queued before a
// prior Stop are not cancelled and resume here.
func (c *Channel) Start() {
	c.active.Store(true)
}

// Stop deactivates the channel. The caller (normally the soundio
// backend) must ensure its audio callback will not be invoked again
// before the next Start, or concurrently with Stop.
func (c *Channel) Stop() {
	c.active.Store(false)
}

// Active reports whether the channel has been started.
func (c *Channel) Active() bool {
	return c.active.Load()
}

// QueueTone enqueues a tone onto the side-channel tone queue. See
// ToneQueue.Push.
func (c *Channel) QueueTone(freqHz float64, durationSamples int, completion func()) error {
	return c.tones.Push(freqHz, durationSamples, completion)
}

// QueueMorse queues Morse code for str. See QueueMorse (package-level).
func (c *Channel) QueueMorse(str string, completion func()) error {
	return QueueMorse(c.tones, str, completion)
}

// SetBridge turns the rx-to-tx audio bridge on or off.
func (c *Channel) SetBridge(enabled bool) {
	c.bridge.SetEnabled(enabled)
}

// ProcessRxAudio is the rx audio callback: it feeds buf through the
// demodulator (recovering bits, assembling codewords and dispatching
// verified ones to recv) and, if the bridge is enabled, appends buf to
// the bridge ring for later playout on tx.
func (c *Channel) ProcessRxAudio(buf []float32) {
	c.bridge.Write(buf)
	c.demod.ProcessSamples(buf, c.onBit)
}

// onBit implements the rx shift-register + FCS-verify wiring of
// spec.md §4.7: every bit shifts into a 64-bit register; whenever the
// low 16 bits match the FCS of the high 48, the payload is delivered.
// Detection is continuous — there is no frame sync beyond FCS validity.
func (c *Channel) onBit(bit int) {
	c.rxShiftReg = (c.rxShiftReg << 1) | uint64(bit&1)
	if FCS(c.rxShiftReg>>16) == uint16(c.rxShiftReg&0xFFFF) {
		if c.recv != nil {
			c.recv(c.rxShiftReg >> 16)
		}
	}
}

// FillTxAudio is the tx audio callback. It first drains the bridge ring
// and mixes the tone queue into buf, then lets the modulator overwrite
// samples belonging to an actively-transmitted codeword — matching the
// original implementation's ordering, where the sound-mixing callback
// runs before the modulator's per-sample loop, so tones and bridged
// audio only show through during silence between codewords.
func (c *Channel) FillTxAudio(buf []float32) {
	c.bridge.Drain(buf)
	c.tones.Mix(buf)
	c.mod.Fill(buf, c.nextCodeword)
}

// nextCodeword implements the modem_tx wiring: poll the upstream
// producer, rewrite the idle sentinel to the traffic-channel sync word,
// and append a frame check sequence to any real payload.
func (c *Channel) nextCodeword() uint64 {
	if c.txcv == nil {
		return SilenceCodeword
	}

	cw := c.txcv()
	switch {
	case cw == IdleCodeword:
		return IdleWord
	case cw > IdleCodeword:
		return FCSAdd(cw)
	default:
		return SilenceCodeword
	}
}
