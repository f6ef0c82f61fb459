// Package mode holds the interaction mode state machine. Exactly one
// mode is active at a time; entering a creation mode leaves whatever
// mode was active before, discarding any in-progress route path.
package mode

import (
	"log/slog"
	"sync"

	"github.com/lorescape/waymark/internal/model"
)

// Mode is the current interaction mode.
type Mode int

const (
	// Idle is the default browsing mode.
	Idle Mode = iota
	// PlacingMarker arms the next map click to open the marker dialog.
	PlacingMarker
	// DrawingRoute accumulates clicked points into a pending path.
	DrawingRoute
)

func (m Mode) String() string {
	switch m {
	case PlacingMarker:
		return "placing-marker"
	case DrawingRoute:
		return "drawing-route"
	default:
		return "idle"
	}
}

// Controller owns the active mode and the pending route path. All
// methods are safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	mode    Mode
	pending []model.Point
	log     *slog.Logger
}

// NewController returns a Controller in Idle mode.
func NewController(log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{log: log}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// PendingPath returns a copy of the in-progress route path.
func (c *Controller) PendingPath() []model.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Point, len(c.pending))
	copy(out, c.pending)
	return out
}

// ToggleMarkerMode switches between Idle and PlacingMarker. Invoked
// while DrawingRoute it abandons the pending path and enters
// PlacingMarker directly. Returns the resulting mode.
func (c *Controller) ToggleMarkerMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == PlacingMarker {
		c.setLocked(Idle)
	} else {
		c.setLocked(PlacingMarker)
	}
	return c.mode
}

// ToggleRouteMode switches between Idle and DrawingRoute. Leaving
// DrawingRoute this way abandons the pending path without creating a
// route. Returns the resulting mode.
func (c *Controller) ToggleRouteMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == DrawingRoute {
		c.setLocked(Idle)
	} else {
		c.setLocked(DrawingRoute)
	}
	return c.mode
}

// Exit returns to Idle, discarding any pending path.
func (c *Controller) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(Idle)
}

// AddRoutePoint appends p to the pending path. It reports false when
// not in DrawingRoute, in which case the point is ignored.
func (c *Controller) AddRoutePoint(p model.Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != DrawingRoute {
		return false
	}
	c.pending = append(c.pending, p)
	return true
}

// FinishRoute completes route drawing. With two or more pending points
// it returns the path, clears it, leaves DrawingRoute, and reports
// true. With fewer it changes nothing and reports false, so the user
// can keep adding points.
func (c *Controller) FinishRoute() ([]model.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != DrawingRoute || len(c.pending) < 2 {
		return nil, false
	}
	path := c.pending
	c.pending = nil
	c.mode = Idle
	c.log.Debug("Route drawing finished", "points", len(path))
	return path, true
}

// setLocked transitions to m and clears the pending path. Callers must
// hold the lock.
func (c *Controller) setLocked(m Mode) {
	if len(c.pending) > 0 {
		c.log.Debug("Discarding pending route path", "points", len(c.pending))
	}
	c.pending = nil
	c.mode = m
}
