// Package rig sets a radio's control-channel frequency at startup via
// Hamlib, through the xylo04/goHamlib bindings. This module never
// retunes mid-session: MPT1327 control-channel assignment is handled by
// the trunking layer upstream, out of scope here (see spec's Non-goals);
// this package only gets the radio parked on the right frequency before
// the modem starts.
package rig

import (
	"fmt"

	"github.com/xylo04/goHamlib"
)

// Rig is a thin, startup-only wrapper around a single Hamlib-controlled
// radio.
type Rig struct {
	handle goHamlib.Rig
}

// Open opens the radio identified by modelID (a Hamlib rig model
// number) on the given serial port and sets it to freqHz. The
// connection is not retuned again after Open returns.
func Open(modelID int, port string, freqHz float64) (*Rig, error) {
	r := goHamlib.Rig{}
	r.SetModel(modelID)

	if err := r.Open(port); err != nil {
		return nil, fmt.Errorf("rig: open model %d on %s: %w", modelID, port, err)
	}

	if err := r.SetFreq(goHamlib.VFOCurrent, freqHz); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("rig: set frequency %.0f Hz: %w", freqHz, err)
	}

	return &Rig{handle: r}, nil
}

// Frequency returns the radio's currently reported VFO frequency, in Hz.
func (rg *Rig) Frequency() (float64, error) {
	freq, err := rg.handle.GetFreq(goHamlib.VFOCurrent)
	if err != nil {
		return 0, fmt.Errorf("rig: get frequency: %w", err)
	}
	return freq, nil
}

// Close releases the Hamlib connection.
func (rg *Rig) Close() error {
	if err := rg.handle.Close(); err != nil {
		return fmt.Errorf("rig: close: %w", err)
	}
	return nil
}
