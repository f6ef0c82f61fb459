package logging

import "github.com/rs/zerolog"

// InteractionLogger writes the interaction dispatcher's event log
// through zerolog. Dispatcher events are small and flat (a clicked
// point, a zoom level, a pending point count), so key-value pairs map
// onto zerolog fields one to one.
type InteractionLogger struct {
	zl zerolog.Logger
}

// NewInteractionLogger wraps a zerolog.Logger for use as the
// dispatcher's logger.
func NewInteractionLogger(zl zerolog.Logger) *InteractionLogger {
	return &InteractionLogger{zl: zl}
}

func (l *InteractionLogger) Debug(msg string, keysAndValues ...any) {
	withPairs(l.zl.Debug(), keysAndValues).Msg(msg)
}

func (l *InteractionLogger) Info(msg string, keysAndValues ...any) {
	withPairs(l.zl.Info(), keysAndValues).Msg(msg)
}

func (l *InteractionLogger) Error(msg string, keysAndValues ...any) {
	withPairs(l.zl.Error(), keysAndValues).Msg(msg)
}

// withPairs applies key-value pairs as zerolog fields. A pair with a
// non-string key is dropped, as is a dangling trailing value.
func withPairs(ev *zerolog.Event, pairs []any) *zerolog.Event {
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, pairs[i+1])
	}
	return ev
}
