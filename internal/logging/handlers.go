package logging

import (
	"context"
	"errors"
	"log/slog"
)

// SessionState reports attributes describing the live session, such as
// the current interaction mode. It is sampled when each record is
// written, so log lines carry the state at write time rather than the
// state at setup time.
type SessionState func() []slog.Attr

// sessionHandler stamps every record with the sampled session state
// before handing it to the next handler.
type sessionHandler struct {
	next  slog.Handler
	state SessionState
}

func withSessionState(next slog.Handler, state SessionState) slog.Handler {
	if state == nil {
		return next
	}
	return &sessionHandler{next: next, state: state}
}

func (h *sessionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sessionHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.state()...)
	return h.next.Handle(ctx, r)
}

func (h *sessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sessionHandler{next: h.next.WithAttrs(attrs), state: h.state}
}

func (h *sessionHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &sessionHandler{next: h.next.WithGroup(name), state: h.state}
}

// teeHandler duplicates records across sinks. A record reaches every
// sink whose level admits it; sink errors are collected rather than
// short-circuiting, so one failing sink cannot silence the rest.
type teeHandler struct {
	sinks []slog.Handler
}

func newTee(sinks ...slog.Handler) slog.Handler {
	live := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 1 {
		return live[0]
	}
	return &teeHandler{sinks: live}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range t.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range t.sinks {
		if s.Enabled(ctx, r.Level) {
			if err := s.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(t.sinks))
	for i, s := range t.sinks {
		sinks[i] = s.WithAttrs(attrs)
	}
	return &teeHandler{sinks: sinks}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}
	sinks := make([]slog.Handler, len(t.sinks))
	for i, s := range t.sinks {
		sinks[i] = s.WithGroup(name)
	}
	return &teeHandler{sinks: sinks}
}
