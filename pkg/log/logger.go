package log

// Logger receives pairing log events.
// A nil Logger or NoopLogger disables capture.
type Logger interface {
	// Log records an event. It is called with the session lock held, so
	// implementations must be safe for concurrent use and must not block
	// or call back into the session.
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// MultiLogger fans events out to several loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Nil entries are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{loggers: make([]Logger, 0, len(loggers))}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log sends the event to every logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var (
	_ Logger = NoopLogger{}
	_ Logger = (*MultiLogger)(nil)
)
