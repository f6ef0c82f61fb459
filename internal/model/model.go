// Package model defines the annotation record types shared across the
// waymark core: point markers and multi-point routes.
package model

// Point is a coordinate pair in the map's own CRS, ordered
// latitude-like then longitude-like. The CRS is arbitrary (a fantasy
// world), so no range restrictions apply.
type Point [2]float64

// Lat returns the latitude-like component.
func (p Point) Lat() float64 { return p[0] }

// Lon returns the longitude-like component.
func (p Point) Lon() float64 { return p[1] }

// MarkerType classifies a map marker.
type MarkerType string

const (
	MarkerCity    MarkerType = "city"
	MarkerTown    MarkerType = "town"
	MarkerVillage MarkerType = "village"
	MarkerFort    MarkerType = "fort"
	MarkerDungeon MarkerType = "dungeon"
	MarkerCave    MarkerType = "cave"
	MarkerPortal  MarkerType = "portal"
	MarkerFarm    MarkerType = "farm"
	MarkerUnknown MarkerType = "unknown"
)

// MarkerTypes lists all valid marker types in presentation order.
var MarkerTypes = []MarkerType{
	MarkerCity, MarkerTown, MarkerVillage, MarkerFort,
	MarkerDungeon, MarkerCave, MarkerPortal, MarkerFarm, MarkerUnknown,
}

// RouteType classifies a route.
type RouteType string

const (
	RouteMain      RouteType = "main"
	RouteSecondary RouteType = "secondary"
	RouteSecret    RouteType = "secret"
	RouteCustom    RouteType = "custom"
)

// RouteTypes lists all valid route types in presentation order.
var RouteTypes = []RouteType{RouteMain, RouteSecondary, RouteSecret, RouteCustom}

// MarkerRecord is a single point annotation on the map.
//
// ID and CreatedAt are assigned by the store at creation time and never
// mutated afterwards. Built-in markers carry IsCustom=false and are never
// written to the persistence layer.
type MarkerRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        MarkerType `json:"type"`
	Location    Point      `json:"location"`
	Description string     `json:"description,omitempty"`
	Link        string     `json:"link,omitempty"`
	Major       bool       `json:"major"`
	IsCustom    bool       `json:"isCustom"`
	CreatedAt   int64      `json:"createdAt,omitempty"` // epoch milliseconds
}

// RouteRecord is a multi-point annotation on the map. A committed route
// has at least two path points; shorter paths exist only transiently
// while drawing.
type RouteRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        []Point   `json:"path"`
	Type        RouteType `json:"type"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Width       int       `json:"width"`
	IsCustom    bool      `json:"isCustom"`
	CreatedAt   int64     `json:"createdAt,omitempty"` // epoch milliseconds
}

// Presentation defaults applied when a route is created without explicit
// styling. Defaults live here, in the constructor path, rather than at
// call sites (see ApplyRouteDefaults).
const (
	DefaultRouteColor = "#3388ff"
	DefaultRouteWidth = 3
)

// ApplyRouteDefaults fills zero-valued presentation fields on r.
func ApplyRouteDefaults(r *RouteRecord) {
	if r.Type == "" {
		r.Type = RouteCustom
	}
	if r.Color == "" {
		r.Color = DefaultRouteColor
	}
	if r.Width <= 0 {
		r.Width = DefaultRouteWidth
	}
}

// ValidMarkerType reports whether t is one of the known marker types.
func ValidMarkerType(t MarkerType) bool {
	for _, k := range MarkerTypes {
		if t == k {
			return true
		}
	}
	return false
}

// ValidRouteType reports whether t is one of the known route types.
func ValidRouteType(t RouteType) bool {
	for _, k := range RouteTypes {
		if t == k {
			return true
		}
	}
	return false
}
