package dispatcher

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lorescape/waymark/internal/mode"
	"github.com/lorescape/waymark/internal/model"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

type captured struct {
	dialogAt []model.Point
	finished [][]model.Point
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *mode.Controller, *captured) {
	t.Helper()

	modes := mode.NewController(nil)
	acts := &captured{}
	d, err := New(modes, Callbacks{
		OpenMarkerDialog: func(p model.Point) { acts.dialogAt = append(acts.dialogAt, p) },
		RouteFinished:    func(path []model.Point) { acts.finished = append(acts.finished, path) },
	}, &testLogger{})
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}
	return d, modes, acts
}

func TestDispatcher_IdleClickRecordsPosition(t *testing.T) {
	d, _, acts := newTestDispatcher(t)

	if _, ok := d.LastClick(); ok {
		t.Error("no click recorded yet")
	}

	d.Click(model.Point{10, 20})

	got, ok := d.LastClick()
	if !ok {
		t.Fatal("expected a recorded click")
	}
	if got != (model.Point{10, 20}) {
		t.Errorf("expected {10 20}, got %v", got)
	}
	if len(acts.dialogAt) != 0 {
		t.Error("idle click must not open the marker dialog")
	}
}

func TestDispatcher_PlacingMarkerClickOpensDialog(t *testing.T) {
	d, modes, acts := newTestDispatcher(t)
	modes.ToggleMarkerMode()

	d.Click(model.Point{5, 6})

	if len(acts.dialogAt) != 1 || acts.dialogAt[0] != (model.Point{5, 6}) {
		t.Errorf("expected one dialog request at {5 6}, got %v", acts.dialogAt)
	}
	if _, ok := d.LastClick(); ok {
		t.Error("a dialog-opening click must not also update the last click position")
	}
}

func TestDispatcher_DrawingClickExtendsPath(t *testing.T) {
	d, modes, acts := newTestDispatcher(t)
	modes.ToggleRouteMode()

	d.Click(model.Point{1, 1})
	d.Click(model.Point{2, 2})

	if got := len(modes.PendingPath()); got != 2 {
		t.Errorf("expected 2 pending points, got %d", got)
	}
	if len(acts.dialogAt) != 0 {
		t.Error("drawing clicks must not open the marker dialog")
	}
	if _, ok := d.LastClick(); ok {
		t.Error("drawing clicks must not update the last click position")
	}
}

func TestDispatcher_DoubleClickFinishesRoute(t *testing.T) {
	d, modes, acts := newTestDispatcher(t)
	modes.ToggleRouteMode()

	d.Click(model.Point{1, 1})
	d.Click(model.Point{2, 2})
	d.DoubleClick(model.Point{2, 2})

	if len(acts.finished) != 1 {
		t.Fatalf("expected one finished route, got %d", len(acts.finished))
	}
	if len(acts.finished[0]) != 2 {
		t.Errorf("expected 2 points in the finished path, got %d", len(acts.finished[0]))
	}
	if modes.Mode() != mode.Idle {
		t.Errorf("expected Idle after finishing, got %v", modes.Mode())
	}
}

func TestDispatcher_DoubleClickWithOnePointIsNoop(t *testing.T) {
	d, modes, acts := newTestDispatcher(t)
	modes.ToggleRouteMode()

	d.Click(model.Point{1, 1})
	d.DoubleClick(model.Point{1, 1})

	if len(acts.finished) != 0 {
		t.Error("a one-point route must not finish")
	}
	if modes.Mode() != mode.DrawingRoute {
		t.Errorf("drawing mode must survive a failed finish, got %v", modes.Mode())
	}
	if got := len(modes.PendingPath()); got != 1 {
		t.Errorf("the pending point must survive, got %d", got)
	}
}

func TestDispatcher_DoubleClickOutsideDrawing(t *testing.T) {
	d, modes, acts := newTestDispatcher(t)

	d.DoubleClick(model.Point{1, 1})
	if len(acts.finished) != 0 {
		t.Error("double click outside drawing must do nothing")
	}

	modes.ToggleMarkerMode()
	d.DoubleClick(model.Point{1, 1})
	if len(acts.finished) != 0 {
		t.Error("double click while placing a marker must do nothing")
	}
	if len(acts.dialogAt) != 0 {
		t.Error("double click must not open the marker dialog")
	}
}

func TestDispatcher_ZoomTrackedInEveryMode(t *testing.T) {
	d, modes, _ := newTestDispatcher(t)

	d.ZoomChanged(2)
	if got := d.Zoom(); got != 2 {
		t.Errorf("expected zoom 2, got %v", got)
	}

	modes.ToggleRouteMode()
	d.Click(model.Point{1, 1})
	d.ZoomChanged(5)

	if got := d.Zoom(); got != 5 {
		t.Errorf("expected zoom 5, got %v", got)
	}
	if got := len(modes.PendingPath()); got != 1 {
		t.Errorf("zoom must not disturb the pending path, got %d points", got)
	}
}
