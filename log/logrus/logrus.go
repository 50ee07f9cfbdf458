// Package logrus adapts a *logrus.Entry to kvcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/kvcache"
)

var _ kvcache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New returns an adapter tagging every entry with component=kvcache.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "kvcache")}
}

func (l LogrusLogger) Debug(msg string, f kvcache.Fields) { l.entry(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f kvcache.Fields)  { l.entry(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f kvcache.Fields)  { l.entry(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f kvcache.Fields) { l.entry(f).Error(msg) }

// entry routes an "err" field through logrus' error key.
func (l LogrusLogger) entry(f kvcache.Fields) *logrus.Entry {
	e := l.E
	if err, ok := f["err"].(error); ok {
		e = e.WithError(err)
	}
	fields := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == "err" {
			if _, ok := v.(error); ok {
				continue
			}
		}
		fields[k] = v
	}
	return e.WithFields(fields)
}
