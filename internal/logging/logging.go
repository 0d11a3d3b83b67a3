// Package logging provides the minimal logging seam shared by every
// component of the dictation engine.
package logging

import "log"

// Logger is the interface every component logs through, so that tests can
// inject a no-op and production wires a real *log.Logger.
type Logger interface {
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

// NoOpLogger discards everything. Used by default in tests and by any
// component constructed without an explicit logger.
type NoOpLogger struct{}

func (NoOpLogger) Printf(format string, args ...interface{}) {}
func (NoOpLogger) Println(args ...interface{})               {}

// StdLogger adapts the standard library's *log.Logger to Logger.
type StdLogger struct {
	L *log.Logger
}

func (s StdLogger) Printf(format string, args ...interface{}) {
	s.L.Printf(format, args...)
}

func (s StdLogger) Println(args ...interface{}) {
	s.L.Println(args...)
}
