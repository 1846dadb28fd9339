// Package soundio wires the mpt1327 channel to a real audio device using
// PortAudio. It is the concrete version of the "audio backend" collaborator
// described as external to the modem core: open (which binds the
// channel's rx/tx audio methods as the stream callback), activate,
// deactivate and close, nothing more.
package soundio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/softtsc/mpt1327modem/mpt1327"
)

// Device streams mono float32 audio at mpt1327.SampleRate to and from a
// single channel, driving its rx/tx audio callbacks directly from the
// PortAudio real-time thread.
type Device struct {
	stream       *portaudio.Stream
	channel      *mpt1327.Channel
	framesPerBuf int
}

// Open opens the PortAudio default input and output devices with the
// given callback block size, and binds them to ch. The audio thread starts calling ch.ProcessRxAudio /
// ch.FillTxAudio as soon as Activate is called.
func Open(ch *mpt1327.Channel, framesPerBuffer int) (*Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("soundio: initialize portaudio: %w", err)
	}

	d := &Device{channel: ch, framesPerBuf: framesPerBuffer}

	stream, err := portaudio.OpenDefaultStream(
		1, 1,
		float64(mpt1327.SampleRate),
		framesPerBuffer,
		d.callback,
	)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("soundio: open default stream: %w", err)
	}

	d.stream = stream
	return d, nil
}

// callback is invoked by PortAudio on its own real-time thread. It must
// never block or allocate; mpt1327.Channel's audio-path methods uphold
// that contract.
func (d *Device) callback(in, out []float32) {
	d.channel.ProcessRxAudio(in)
	d.channel.FillTxAudio(out)
}

// Activate starts the audio stream.
func (d *Device) Activate() error {
	if err := d.stream.Start(); err != nil {
		return fmt.Errorf("soundio: start stream: %w", err)
	}
	return nil
}

// Deactivate stops the audio stream. The caller must do this before
// tearing down the Channel, and must not call Activate again
// concurrently with Deactivate.
func (d *Device) Deactivate() error {
	if err := d.stream.Stop(); err != nil {
		return fmt.Errorf("soundio: stop stream: %w", err)
	}
	return nil
}

// Close releases the stream and the PortAudio library handle. Deactivate
// must have returned first.
func (d *Device) Close() error {
	if err := d.stream.Close(); err != nil {
		return fmt.Errorf("soundio: close stream: %w", err)
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("soundio: terminate portaudio: %w", err)
	}
	return nil
}
