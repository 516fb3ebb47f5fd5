package rig

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// realPin wraps a gpio.PinIO to satisfy the Pin interface.
type realPin struct {
	gpio.PinIO
}

func (p *realPin) Out(l Level) error {
	if l == High {
		return p.PinIO.Out(gpio.High)
	}
	return p.PinIO.Out(gpio.Low)
}

func (p *realPin) Read() Level {
	if p.PinIO.Read() == gpio.High {
		return High
	}
	return Low
}

// NewGPIORig creates a GPIO PTT backend for Linux systems.
// It initialises the periph.io host, resolves the configured pin and
// drives the PTT line to the released state.
func NewGPIORig(c GPIOConfig) (*GPIORig, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	if c.PTTPin == 0 {
		c.PTTPin = 17
	}

	name := fmt.Sprintf("GPIO%d", c.PTTPin)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to open PTT pin %s", name)
	}

	return newPTT(c, &realPin{PinIO: p})
}
