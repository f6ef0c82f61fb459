package mode

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorescape/waymark/internal/model"
)

func newController() *Controller {
	return NewController(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStartsIdle(t *testing.T) {
	c := newController()
	assert.Equal(t, Idle, c.Mode())
	assert.Empty(t, c.PendingPath())
}

func TestToggleMarkerMode(t *testing.T) {
	c := newController()
	assert.Equal(t, PlacingMarker, c.ToggleMarkerMode())
	assert.Equal(t, Idle, c.ToggleMarkerMode())
}

func TestToggleRouteMode(t *testing.T) {
	c := newController()
	assert.Equal(t, DrawingRoute, c.ToggleRouteMode())
	assert.Equal(t, Idle, c.ToggleRouteMode())
}

func TestModesAreExclusive(t *testing.T) {
	c := newController()

	c.ToggleRouteMode()
	require.True(t, c.AddRoutePoint(model.Point{1, 1}))

	assert.Equal(t, PlacingMarker, c.ToggleMarkerMode())
	assert.Empty(t, c.PendingPath(), "switching modes abandons the pending path")

	assert.Equal(t, DrawingRoute, c.ToggleRouteMode())
	assert.Equal(t, DrawingRoute, c.Mode())
}

func TestAddRoutePointOutsideDrawing(t *testing.T) {
	c := newController()
	assert.False(t, c.AddRoutePoint(model.Point{1, 1}))

	c.ToggleMarkerMode()
	assert.False(t, c.AddRoutePoint(model.Point{1, 1}))
	assert.Empty(t, c.PendingPath())
}

func TestFinishRouteNeedsTwoPoints(t *testing.T) {
	c := newController()
	c.ToggleRouteMode()
	c.AddRoutePoint(model.Point{1, 1})

	path, ok := c.FinishRoute()
	assert.False(t, ok)
	assert.Nil(t, path)
	assert.Equal(t, DrawingRoute, c.Mode(), "a failed finish keeps drawing mode active")
	assert.Len(t, c.PendingPath(), 1, "the single point survives")
}

func TestFinishRouteReturnsPathAndResets(t *testing.T) {
	c := newController()
	c.ToggleRouteMode()
	c.AddRoutePoint(model.Point{1, 1})
	c.AddRoutePoint(model.Point{2, 2})
	c.AddRoutePoint(model.Point{3, 3})

	path, ok := c.FinishRoute()
	require.True(t, ok)
	assert.Equal(t, []model.Point{{1, 1}, {2, 2}, {3, 3}}, path)
	assert.Equal(t, Idle, c.Mode())
	assert.Empty(t, c.PendingPath())
}

func TestFinishRouteOutsideDrawing(t *testing.T) {
	c := newController()
	_, ok := c.FinishRoute()
	assert.False(t, ok)
}

func TestExitDiscardsPending(t *testing.T) {
	c := newController()
	c.ToggleRouteMode()
	c.AddRoutePoint(model.Point{1, 1})
	c.AddRoutePoint(model.Point{2, 2})

	c.Exit()
	assert.Equal(t, Idle, c.Mode())
	assert.Empty(t, c.PendingPath())
}

func TestPendingPathIsACopy(t *testing.T) {
	c := newController()
	c.ToggleRouteMode()
	c.AddRoutePoint(model.Point{1, 1})

	got := c.PendingPath()
	got[0] = model.Point{9, 9}
	assert.Equal(t, []model.Point{{1, 1}}, c.PendingPath())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "placing-marker", PlacingMarker.String())
	assert.Equal(t, "drawing-route", DrawingRoute.String())
}
