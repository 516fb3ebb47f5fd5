package rig

import (
	"fmt"
	"sync"
)

// GPIOConfig holds the configuration for the GPIO PTT backend.
type GPIOConfig struct {
	// PTTPin is the GPIO pin number (BCM numbering) that keys the
	// transmitter. Defaults to 17 if not provided.
	PTTPin int
	// ActiveLow inverts the keying polarity, for interfaces that key
	// the transmitter by pulling the PTT line to ground.
	ActiveLow bool
}

// GPIORig is a minimal rig backend that keys a transmitter through a
// single GPIO push-to-talk line. It reports its activity through the
// debug callback, so attaching a Sink to it shows every keying operation.
type GPIORig struct {
	debugState
	mu  sync.Mutex
	pin Pin
	cfg GPIOConfig
}

// newPTT wires a GPIORig to the provided pin and drives it to the
// unkeyed state. Used directly by tests; NewGPIORig resolves the real
// hardware pin first.
func newPTT(c GPIOConfig, p Pin) (*GPIORig, error) {
	if c.PTTPin == 0 {
		c.PTTPin = 17
	}

	r := &GPIORig{
		pin: p,
		cfg: c,
	}

	// Make sure we never come up keyed.
	if err := p.Out(r.pinLevel(false)); err != nil {
		return nil, fmt.Errorf("failed to release ptt line: %w", err)
	}

	r.debugf(DebugVerbose, "ptt: GPIO%d ready, active low: %v", c.PTTPin, c.ActiveLow)

	return r, nil
}

// pinLevel maps the logical keyed state to the electrical pin level.
func (r *GPIORig) pinLevel(on bool) Level {
	return Level(on != r.cfg.ActiveLow)
}

// SetPTT keys (on=true) or releases (on=false) the transmitter.
// This method is concurrent safe.
func (r *GPIORig) SetPTT(on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.debugf(DebugTrace, "ptt: set ptt %v on GPIO%d", on, r.cfg.PTTPin)

	if err := r.pin.Out(r.pinLevel(on)); err != nil {
		r.debugf(DebugErr, "ptt: GPIO%d write failed: %v", r.cfg.PTTPin, err)
		return fmt.Errorf("set ptt: %w", err)
	}
	return nil
}

// PTT reports whether the transmitter is currently keyed.
// This method is concurrent safe.
func (r *GPIORig) PTT() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyed := r.pin.Read() == High
	if r.cfg.ActiveLow {
		keyed = !keyed
	}
	return keyed
}

// Close releases the PTT line so the transmitter is never left keyed.
// This method is concurrent safe.
func (r *GPIORig) Close() error {
	r.debugf(DebugVerbose, "ptt: closing, releasing GPIO%d", r.cfg.PTTPin)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.pin.Out(r.pinLevel(false)); err != nil {
		return fmt.Errorf("failed to release ptt line: %w", err)
	}
	return nil
}
