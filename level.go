package rig

// DebugLevel selects how much diagnostic output a rig backend and the
// debug sink produce. The numeric values are part of the backend contract:
// a backend filters on the raw number it was handed via SetDebugLevel,
// so the scale must stay stable.
type DebugLevel int

const (
	// DebugNone disables all debug output.
	DebugNone DebugLevel = iota
	// DebugErr shows serious errors only.
	DebugErr
	// DebugWarn adds warnings.
	DebugWarn
	// DebugInfo adds general information messages.
	DebugInfo
	// DebugVerbose adds verbose progress messages.
	DebugVerbose
	// DebugTrace shows everything, including per-operation traces.
	DebugTrace
)

func (l DebugLevel) String() string {
	switch l {
	case DebugNone:
		return "NONE"
	case DebugErr:
		return "ERR"
	case DebugWarn:
		return "WARN"
	case DebugInfo:
		return "INFO"
	case DebugVerbose:
		return "VERBOSE"
	case DebugTrace:
		return "TRACE"
	default:
		return "unknown"
	}
}

// valid reports whether l is inside the defined scale.
func (l DebugLevel) valid() bool {
	return l >= DebugNone && l <= DebugTrace
}

// MessageSource identifies which side produced a debug message. It only
// affects how the record is displayed, never whether it is emitted.
type MessageSource int

const (
	// SourceNone is the zero value; no particular origin.
	SourceNone MessageSource = iota
	// SourceRig marks messages coming out of a rig backend.
	SourceRig
	// SourceApp marks messages logged by the application itself.
	SourceApp
)

func (s MessageSource) String() string {
	switch s {
	case SourceRig:
		return "RIG"
	case SourceApp:
		return "APP"
	default:
		return "NONE"
	}
}
