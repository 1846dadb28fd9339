// Package ptt keys a push-to-talk GPIO line from the mpt1327 channel's
// transmit activity, using the Linux GPIO character-device ABI via
// go-gpiocdev rather than any sysfs or serial-port hack.
package ptt

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Keyer drives a single PTT output line, active-high or active-low.
type Keyer struct {
	line       *gpiocdev.Line
	activeHigh bool
	keyed      bool
}

// Open requests offset on the named gpiochip device (e.g. "gpiochip0")
// as an output, initially unkeyed.
func Open(device string, offset int, activeHigh bool) (*Keyer, error) {
	initial := 0
	if !activeHigh {
		initial = 1
	}

	line, err := gpiocdev.RequestLine(device, offset,
		gpiocdev.AsOutput(initial),
		gpiocdev.WithConsumer("mpt1327modem"),
	)
	if err != nil {
		return nil, fmt.Errorf("ptt: request line %s:%d: %w", device, offset, err)
	}

	return &Keyer{line: line, activeHigh: activeHigh}, nil
}

// Set keys or unkeys the transmitter. It is safe to call repeatedly with
// the same value; the underlying GPIO write only happens on change.
func (k *Keyer) Set(keyed bool) error {
	if keyed == k.keyed {
		return nil
	}

	level := 0
	if keyed == k.activeHigh {
		level = 1
	}

	if err := k.line.SetValue(level); err != nil {
		return fmt.Errorf("ptt: set value: %w", err)
	}
	k.keyed = keyed
	return nil
}

// Keyed reports the last value successfully set via Set.
func (k *Keyer) Keyed() bool {
	return k.keyed
}

// Close releases the GPIO line, first unkeying if necessary.
func (k *Keyer) Close() error {
	if err := k.Set(false); err != nil {
		return err
	}
	if err := k.line.Close(); err != nil {
		return fmt.Errorf("ptt: close line: %w", err)
	}
	return nil
}
