package logx

import "github.com/sirupsen/logrus"

// Logrus adapts a *logrus.Logger (or the package-level logrus functions via
// logrus.StandardLogger()) to the Logger interface.
type Logrus struct {
	Entry *logrus.Entry
}

// NewLogrus wraps l in a Logger. If l is nil, logrus.StandardLogger() is used.
func NewLogrus(l *logrus.Logger) Logrus {
	if l == nil {
		l = logrus.StandardLogger()
	}

	return Logrus{Entry: logrus.NewEntry(l)}
}

func (l Logrus) Debugf(format string, args ...any) { l.Entry.Debugf(format, args...) }
func (l Logrus) Warnf(format string, args ...any)  { l.Entry.Warnf(format, args...) }
