package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/loadcache"
)

var _ loadcache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "loadcache")}
}

func (l LogrusLogger) Debug(msg string, f loadcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f loadcache.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f loadcache.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f loadcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
