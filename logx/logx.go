// Package logx defines the logging collaborator interface used by the core.
//
// The core never picks a concrete logging backend: it only calls through a
// small interface that
// callers can back with whatever they already use. Nop is the zero-value
// default so every package works without a logger configured.
package logx

// Logger is the minimal logging surface the core calls through. It is
// satisfied by Logrus, this package's thin adapter over
// github.com/sirupsen/logrus, or any other structured logger.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Nop is a Logger that discards everything. It is the default used whenever
// a component is constructed without an explicit logger.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
