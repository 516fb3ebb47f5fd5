package rig

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// timeFormat is the wall-clock stamp prefixed to every record.
const timeFormat = "2006/01/02 15:04:05"

// defaultSeparator sits between the fields of a record.
const defaultSeparator = "|"

// SinkConfig holds the configuration for a debug Sink.
// The zero value is usable: records go to stderr, separated by "|",
// with the threshold at DebugNone (silent).
type SinkConfig struct {
	// LogFile is the path of an optional log file. When set, every
	// record is appended to this file in addition to Output.
	LogFile string
	// Separator is the string between record fields.
	// Defaults to "|" if not provided.
	Separator string
	// SourceNames overrides the display names used for SourceNone,
	// SourceRig and SourceApp, in that order. Empty entries keep the
	// default names ("NONE", "RIG", "APP").
	SourceNames [3]string
	// Level is the initial severity threshold.
	// Defaults to DebugNone (no output) if not provided.
	Level DebugLevel
	// Output is the stream records are written to.
	// Defaults to os.Stderr if not provided.
	Output io.Writer
}

// Sink receives debug text from a rig backend and from the application,
// filters it against a severity threshold and writes one timestamped
// record per line of text. It owns the optional log file handle for its
// lifetime.
//
// The backend callback may fire from the goroutine driving hardware I/O,
// so all state is guarded by a mutex.
type Sink struct {
	mu      sync.Mutex
	rig     Rig
	level   DebugLevel
	sep     string
	names   [3]string
	out     io.Writer
	logFile *os.File
	logPath string
	now     func() time.Time
	closed  bool
}

// NewSink creates a debug sink, registers it as the debug handler of r
// (replacing any previous handler) and forwards the configured threshold
// to the backend. r may be nil for a sink that only serves application
// logging.
//
// If cfg.LogFile cannot be opened, NewSink still returns a usable sink
// that writes to Output only, together with the open error. Logging is a
// side channel; it is up to the caller whether that failure is fatal.
func NewSink(r Rig, cfg SinkConfig) (*Sink, error) {
	if cfg.Separator == "" {
		cfg.Separator = defaultSeparator
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if !cfg.Level.valid() {
		cfg.Level = DebugNone
	}

	s := &Sink{
		rig:   r,
		level: cfg.Level,
		sep:   cfg.Separator,
		out:   cfg.Output,
		now:   time.Now,
	}
	for i, src := range []MessageSource{SourceNone, SourceRig, SourceApp} {
		s.names[i] = src.String()
		if cfg.SourceNames[i] != "" {
			s.names[i] = cfg.SourceNames[i]
		}
	}

	var openErr error
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			openErr = fmt.Errorf("open log file: %w", err)
		} else {
			s.logFile = f
			s.logPath = cfg.LogFile
		}
	}

	if s.rig != nil {
		s.rig.SetDebugCallback(s.handleRigDebug)
		s.rig.SetDebugLevel(s.level)
	}

	s.Log(DebugVerbose, "debug handler initialised")

	return s, openErr
}

// Close emits a final shutdown record, hands debug output back to the
// backend's default handler and releases the log file. Calling Close
// more than once is a no-op. Messages logged after Close still reach
// Output, but no longer the log file.
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Log(DebugVerbose, "shutting down debug handler")

	if s.rig != nil {
		s.rig.SetDebugCallback(nil)
	}

	s.mu.Lock()
	f := s.logFile
	s.logFile = nil
	s.mu.Unlock()

	if f != nil {
		return f.Close()
	}
	return nil
}

// Log records a message originating in the application itself.
// The message is dropped silently when level is above the current
// threshold. Multi-line messages produce one record per line.
func (s *Sink) Log(level DebugLevel, format string, args ...any) {
	s.dispatch(SourceApp, level, format, args)
}

// handleRigDebug is the DebugHandler registered with the backend.
// It always reports success: a logging problem must never propagate
// back into the hardware control path.
func (s *Sink) handleRigDebug(level DebugLevel, format string, args ...any) error {
	s.dispatch(SourceRig, level, format, args)
	return nil
}

// SetLevel updates the threshold and forwards it to the backend, which
// keeps its own filter. Values outside the defined scale are ignored.
func (s *Sink) SetLevel(level DebugLevel) {
	if !level.valid() {
		return
	}
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()

	if s.rig != nil {
		s.rig.SetDebugLevel(level)
	}
}

// Level returns the current severity threshold.
func (s *Sink) Level() DebugLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// LogFilePath returns the path of the configured log file, or "" when
// records are not mirrored to a file.
func (s *Sink) LogFilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logPath
}

func (s *Sink) dispatch(src MessageSource, level DebugLevel, format string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if level > s.level {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	// Trailing whitespace goes, embedded empty lines stay.
	msg = strings.TrimRight(msg, " \t\r\n")
	if msg == "" {
		return
	}

	for _, line := range strings.Split(msg, "\n") {
		s.emitLine(src, level, line)
	}
}

// emitLine writes a single record. Called with the mutex held.
// Write errors are dropped: output is best effort and must not block or
// fail the caller.
func (s *Sink) emitLine(src MessageSource, level DebugLevel, line string) {
	stamp := s.now().Format(timeFormat)

	name := s.names[SourceNone]
	if src >= SourceNone && src <= SourceApp {
		name = s.names[src]
	}

	record := fmt.Sprintf("%s%s%s%s%d%s%s\n",
		stamp, s.sep, name, s.sep, int(level), s.sep, line)

	io.WriteString(s.out, record)
	if s.logFile != nil {
		io.WriteString(s.logFile, record)
	}
}
