// Package dispatcher routes raw map interactions to their
// mode-dependent actions. It owns no UI: callers feed it clicks,
// double clicks, and zoom changes, and it drives the mode controller
// and fires callbacks for actions the presentation layer must handle.
package dispatcher

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lorescape/waymark/internal/mode"
	"github.com/lorescape/waymark/internal/model"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Callbacks are the actions the dispatcher delegates to the caller.
// Nil callbacks are skipped.
type Callbacks struct {
	// OpenMarkerDialog is fired when a click lands while placing a
	// marker; the caller opens its creation dialog at the point.
	OpenMarkerDialog func(model.Point)
	// RouteFinished is fired when a double click completes a route
	// with at least two points.
	RouteFinished func([]model.Point)
}

// Dispatcher applies the interaction rules on top of a mode
// controller.
type Dispatcher struct {
	modes     *mode.Controller
	callbacks Callbacks
	logger    Logger

	// OTEL metrics
	interactions metric.Int64Counter
	finished     metric.Int64Counter

	mu        sync.Mutex
	lastClick model.Point
	clicked   bool
	zoom      float64
}

// New creates a Dispatcher over the given mode controller.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(modes *mode.Controller, callbacks Callbacks, logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		modes:     modes,
		callbacks: callbacks,
		logger:    logger,
	}

	var err error
	m := meter()

	d.interactions, err = m.Int64Counter("waymark.dispatcher.interactions",
		metric.WithDescription("Map interactions processed, by event type"))
	if err != nil {
		return nil, fmt.Errorf("failed to create interactions counter: %w", err)
	}

	d.finished, err = m.Int64Counter("waymark.dispatcher.routes_finished",
		metric.WithDescription("Routes completed via double click"))
	if err != nil {
		return nil, fmt.Errorf("failed to create finished counter: %w", err)
	}

	return d, nil
}

// Click handles a single map click. Exactly one action runs, in
// precedence order: open the marker dialog while placing a marker,
// extend the pending path while drawing a route, otherwise record the
// point as the last click position.
func (d *Dispatcher) Click(p model.Point) {
	d.count("click")

	switch d.modes.Mode() {
	case mode.PlacingMarker:
		d.logger.Debug("Click opens marker dialog", "lat", p.Lat(), "lon", p.Lon())
		if d.callbacks.OpenMarkerDialog != nil {
			d.callbacks.OpenMarkerDialog(p)
		}
	case mode.DrawingRoute:
		d.modes.AddRoutePoint(p)
		d.logger.Debug("Click extends pending route", "points", len(d.modes.PendingPath()))
	default:
		d.mu.Lock()
		d.lastClick = p
		d.clicked = true
		d.mu.Unlock()
	}
}

// DoubleClick finishes the pending route while drawing; in any other
// mode, or with fewer than two pending points, it does nothing.
func (d *Dispatcher) DoubleClick(p model.Point) {
	d.count("double_click")

	if d.modes.Mode() != mode.DrawingRoute {
		return
	}
	path, ok := d.modes.FinishRoute()
	if !ok {
		d.logger.Debug("Double click ignored, route needs at least two points")
		return
	}
	d.finished.Add(context.Background(), 1)
	d.logger.Info("Route finished", "points", len(path))
	if d.callbacks.RouteFinished != nil {
		d.callbacks.RouteFinished(path)
	}
}

// ZoomChanged records the new zoom level. Zoom is tracked in every
// mode and never interferes with pending work.
func (d *Dispatcher) ZoomChanged(level float64) {
	d.count("zoom")

	d.mu.Lock()
	d.zoom = level
	d.mu.Unlock()
	d.logger.Debug("Zoom changed", "level", level)
}

// LastClick returns the most recent idle-mode click position, and
// false before the first one.
func (d *Dispatcher) LastClick() (model.Point, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastClick, d.clicked
}

// Zoom returns the last recorded zoom level.
func (d *Dispatcher) Zoom() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.zoom
}

func (d *Dispatcher) count(event string) {
	d.interactions.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("event", event)))
}
