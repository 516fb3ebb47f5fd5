package rig

// Level represents the logical level of a pin (Low or High).
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Pin represents a generic GPIO pin used for transmitter keying.
type Pin interface {
	// Out sets the pin as output with the given level.
	Out(l Level) error
	// Read returns the current level of the pin.
	Read() Level
}
