package tui

import (
	"strings"

	"github.com/lorescape/waymark/internal/model"
)

// Markers below this zoom are thinned down to the major ones.
const minorMarkerZoom = 1.0

var markerGlyphs = map[model.MarkerType]rune{
	model.MarkerCity:    '◉',
	model.MarkerTown:    '●',
	model.MarkerVillage: '○',
	model.MarkerFort:    '▲',
	model.MarkerDungeon: '▼',
	model.MarkerCave:    '◆',
	model.MarkerPortal:  '✦',
	model.MarkerFarm:    '❀',
	model.MarkerUnknown: '•',
}

// screenXY maps a record point to screen cell coordinates considering
// zoom (around the viewport center) and pan.
func (m Model) screenXY(p model.Point, w, h int) (int, int, bool) {
	if !(m.world.MaxX > m.world.MinX && m.world.MaxY > m.world.MinY) {
		return 0, 0, false
	}
	nx := (p.Lon() - m.world.MinX) / (m.world.MaxX - m.world.MinX)
	ny := (p.Lat() - m.world.MinY) / (m.world.MaxY - m.world.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// cellToPoint converts a map cell back to a record point using the
// world extent, zoom, and pan.
func (m Model) cellToPoint(cx, cy, w, h int) (model.Point, bool) {
	if !(m.world.MaxX > m.world.MinX && m.world.MaxY > m.world.MinY) {
		return model.Point{}, false
	}
	if w <= 1 || h <= 1 {
		return model.Point{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.world.MinX + nx*(m.world.MaxX-m.world.MinX)
	lat := m.world.MinY + ny*(m.world.MaxY-m.world.MinY)
	return model.Point{lat, lon}, true
}

func (m Model) renderMap(w, h int) string {
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	set := func(x, y int, r rune) {
		if y >= 0 && y < h && x >= 0 && x < w {
			grid[y][x] = r
		}
	}

	// routes underneath markers
	for _, rec := range m.deps.Routes.All() {
		m.drawPath(grid, rec.Path, w, h, false)
	}
	if pending := m.deps.Modes.PendingPath(); len(pending) > 0 {
		m.drawPath(grid, pending, w, h, true)
	}

	for _, rec := range m.deps.Markers.All() {
		if !rec.Major && m.zoom < minorMarkerZoom {
			continue
		}
		sx, sy, ok := m.screenXY(rec.Location, w, h)
		if !ok {
			continue
		}
		glyph, known := markerGlyphs[rec.Type]
		if !known {
			glyph = markerGlyphs[model.MarkerUnknown]
		}
		set(sx, sy, glyph)
	}

	lines := make([]string, h)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return strings.Join(lines, "\n")
}

// drawPath projects a path and draws its segments. Pending paths use
// distinct vertex glyphs so in-progress work reads differently from
// committed routes.
func (m Model) drawPath(grid [][]rune, path []model.Point, w, h int, pending bool) {
	var prev [2]int
	havePrev := false
	vertex := '•'
	if pending {
		vertex = '◌'
	}
	for _, p := range path {
		sx, sy, ok := m.screenXY(p, w, h)
		if !ok {
			continue
		}
		if havePrev {
			drawSegment(grid, prev[0], prev[1], sx, sy)
		}
		if sy >= 0 && sy < len(grid) && sx >= 0 && sx < len(grid[sy]) {
			grid[sy][sx] = vertex
		}
		prev = [2]int{sx, sy}
		havePrev = true
	}
}

// drawSegment draws a line between two cells with direction-aware
// glyphs (Bresenham).
func drawSegment(grid [][]rune, x0, y0, x1, y1 int) {
	h := len(grid)
	if h == 0 {
		return
	}
	if (y0 < 0 && y1 < 0) || (y0 >= h && y1 >= h) {
		return
	}
	put := func(x, y int, r rune) {
		if y >= 0 && y < h && x >= 0 && x < len(grid[y]) {
			grid[y][x] = r
		}
	}

	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	put(x0, y0, '•')
	for {
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		movedX, movedY := false, false
		if e2 >= dy {
			err += dy
			x0 += sx
			movedX = true
		}
		if e2 <= dx {
			err += dx
			y0 += sy
			movedY = true
		}
		glyph := '•'
		if movedX && movedY {
			if (sx > 0 && sy > 0) || (sx < 0 && sy < 0) {
				glyph = '╲'
			} else {
				glyph = '╱'
			}
		} else if movedX {
			glyph = '─'
		} else if movedY {
			glyph = '│'
		}
		put(x0, y0, glyph)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
