package emit

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Sink is the diagnostic channel. Write receives one rendered warning
// without a trailing newline. Errors are swallowed by the emitter.
type Sink interface {
	Write(line string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(line string) error

func (f SinkFunc) Write(line string) error { return f(line) }

// WriterSink writes one line per warning to an io.Writer with a single
// Write call. It adds no locking of its own.
type WriterSink struct {
	W io.Writer
}

// Stderr returns the conventional diagnostic channel.
func Stderr() WriterSink {
	return WriterSink{W: os.Stderr}
}

func (s WriterSink) Write(line string) error {
	if s.W == nil {
		return errors.New("emit: nil writer")
	}
	_, err := io.WriteString(s.W, line+"\n")
	return err
}

// Discard drops every line.
var Discard Sink = SinkFunc(func(string) error { return nil })

// MultiSink writes to every sink and returns the first error.
type MultiSink []Sink

func (m MultiSink) Write(line string) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Write(line); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LogrusSink routes warnings into a host logger at warn level.
type LogrusSink struct {
	Logger logrus.FieldLogger
}

func (s LogrusSink) Write(line string) error {
	if s.Logger == nil {
		return errors.New("emit: nil logger")
	}
	s.Logger.Warn(line)
	return nil
}
