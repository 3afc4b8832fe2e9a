// Package logging contains basic logging abstractions used throughout the
// execution framework: a minimal Logger interface, a null implementation, a
// prefixing decorator, and a thread-safe capturing logger whose output can be
// attached to a context's accumulated state and dumped later.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is a simple mechanism for debug output. Components in this
// repository take a Logger rather than writing to a global log.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}

// PrefixedLogger returns a Logger that delegates to base, prepending a fixed
// prefix to every message. Useful for tagging output per execution context.
func PrefixedLogger(base Logger, prefix string) Logger {
	if base == nil {
		return nullLogger{}
	}
	return prefixedLogger{base: base, prefix: prefix}
}

// CapturedMessage is one timestamped line of captured output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is an ordered list of captured messages.
type CapturedOutput []CapturedMessage

// CapturingLogger accumulates output in memory. It is safe for concurrent
// use; messages are appended in arrival order and never removed.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

// Output returns a copy of everything captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each captured message to dest, one line per message, with the
// given prefix on every line.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
