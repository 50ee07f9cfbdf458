package kvcache

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around logging stack
// (see log/zap, log/logrus, log/slog).
// If Logger is nil in Options, NopLogger is used.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// nsLogger stamps every record with the cache namespace.
type nsLogger struct {
	ns string
	l  Logger
}

func (n nsLogger) with(f Fields) Fields {
	out := make(Fields, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out["ns"] = n.ns
	return out
}

func (n nsLogger) Debug(msg string, f Fields) { n.l.Debug(msg, n.with(f)) }
func (n nsLogger) Info(msg string, f Fields)  { n.l.Info(msg, n.with(f)) }
func (n nsLogger) Warn(msg string, f Fields)  { n.l.Warn(msg, n.with(f)) }
func (n nsLogger) Error(msg string, f Fields) { n.l.Error(msg, n.with(f)) }
