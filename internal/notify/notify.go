// Package notify manages transient user notifications and the single
// active confirmation dialog.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Severity of a notification.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Notification is one visible message.
type Notification struct {
	ID       string
	Severity Severity
	Message  string
}

// DefaultDismissAfter is how long a notification stays visible when no
// interval is configured.
const DefaultDismissAfter = 5 * time.Second

// Center holds the active notifications. Every notification is
// auto-dismissed after the configured interval; manual dismissal is
// idempotent, so an auto-dismiss racing a manual one removes the entry
// exactly once.
type Center struct {
	mu           sync.Mutex
	seq          int
	active       []Notification
	timers       map[string]*time.Timer
	dismissAfter time.Duration
	onChange     func()
	log          *slog.Logger
}

// NewCenter creates a Center. A non-positive dismissAfter falls back
// to DefaultDismissAfter. onChange, if set, fires after every change
// to the active set so the presentation layer can repaint; it may be
// called from a timer goroutine.
func NewCenter(dismissAfter time.Duration, onChange func(), log *slog.Logger) *Center {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	if log == nil {
		log = slog.Default()
	}
	return &Center{
		timers:       make(map[string]*time.Timer),
		dismissAfter: dismissAfter,
		onChange:     onChange,
		log:          log,
	}
}

// Push adds a notification and schedules its auto-dismiss. The
// returned id is unique within the Center's lifetime.
func (c *Center) Push(severity Severity, message string) string {
	c.mu.Lock()
	c.seq++
	id := fmt.Sprintf("alert-%d", c.seq)
	c.active = append(c.active, Notification{ID: id, Severity: severity, Message: message})
	c.timers[id] = time.AfterFunc(c.dismissAfter, func() { c.Dismiss(id) })
	c.mu.Unlock()

	c.log.Debug("Notification pushed", "id", id, "severity", string(severity))
	c.changed()
	return id
}

// Infof, Successf, Warningf and Errorf push a formatted notification.
func (c *Center) Infof(format string, args ...any) string {
	return c.Push(Info, fmt.Sprintf(format, args...))
}

func (c *Center) Successf(format string, args ...any) string {
	return c.Push(Success, fmt.Sprintf(format, args...))
}

func (c *Center) Warningf(format string, args ...any) string {
	return c.Push(Warning, fmt.Sprintf(format, args...))
}

func (c *Center) Errorf(format string, args ...any) string {
	return c.Push(Error, fmt.Sprintf(format, args...))
}

// Dismiss removes the notification with the given id. Dismissing an
// id that is already gone does nothing.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	timer, known := c.timers[id]
	if !known {
		c.mu.Unlock()
		return
	}
	timer.Stop()
	delete(c.timers, id)
	kept := c.active[:0]
	for _, n := range c.active {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.active = kept
	c.mu.Unlock()

	c.changed()
}

// Active returns the visible notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close stops all pending auto-dismiss timers.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
}

func (c *Center) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
