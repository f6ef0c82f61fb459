// Package transfer implements bulk export and import of custom
// annotation records. Exports write indented JSON arrays under fixed
// filenames; imports re-validate every element and re-create the
// survivors through the store, so imported records always carry fresh
// identity.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lorescape/waymark/internal/model"
	"github.com/lorescape/waymark/internal/store"
	"github.com/lorescape/waymark/internal/util"
)

// Fixed filenames for JSON exports.
const (
	MarkersFilename = "custom-markers.json"
	RoutesFilename  = "custom-routes.json"
)

var (
	// ErrParse means the payload is not valid JSON at all.
	ErrParse = errors.New("data is not valid JSON")
	// ErrFormat means the payload parsed but the top-level value is
	// not an array.
	ErrFormat = errors.New("top-level JSON value is not an array")
	// ErrNoValidRecords means the array held nothing importable.
	ErrNoValidRecords = errors.New("no valid records found")
	// ErrNoRecords means an export was requested with no custom
	// records to write.
	ErrNoRecords = errors.New("no custom records to export")
)

// Report summarizes an import: how many array elements were accepted,
// how many were skipped, and the total seen.
type Report struct {
	Imported int
	Skipped  int
	Total    int
}

// Partial reports whether some, but not all, elements were imported.
func (r Report) Partial() bool {
	return r.Imported > 0 && r.Skipped > 0
}

// String renders the report the way notifications show it.
func (r Report) String() string {
	if r.Partial() {
		return fmt.Sprintf("Imported %d out of %d records", r.Imported, r.Total)
	}
	return fmt.Sprintf("Imported %d records", r.Imported)
}

// ExportMarkers writes the custom markers as an indented JSON array to
// dir/custom-markers.json and returns the written path.
func ExportMarkers(s *store.Store[model.MarkerRecord], dir string) (string, error) {
	return exportJSON(s.Custom(), dir, MarkersFilename)
}

// ExportRoutes writes the custom routes as an indented JSON array to
// dir/custom-routes.json and returns the written path.
func ExportRoutes(s *store.Store[model.RouteRecord], dir string) (string, error) {
	return exportJSON(s.Custom(), dir, RoutesFilename)
}

func exportJSON[R any](customs []R, dir, filename string) (string, error) {
	if len(customs) == 0 {
		return "", ErrNoRecords
	}
	data, err := json.MarshalIndent(customs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ImportMarkers imports a JSON array of marker objects. Each valid
// element is added to the store as a new custom marker with a fresh
// id; invalid elements are skipped. The report is meaningful whenever
// the error is nil.
func ImportMarkers(s *store.Store[model.MarkerRecord], data []byte) (Report, error) {
	elements, err := decodeArray(data)
	if err != nil {
		return Report{}, err
	}
	return importElements(elements, func(raw json.RawMessage) bool {
		var in incomingMarker
		if err := json.Unmarshal(raw, &in); err != nil || !in.valid() {
			return false
		}
		s.Add(in.record())
		return true
	})
}

// ImportRoutes imports a JSON array of route objects, with the same
// contract as ImportMarkers.
func ImportRoutes(s *store.Store[model.RouteRecord], data []byte) (Report, error) {
	elements, err := decodeArray(data)
	if err != nil {
		return Report{}, err
	}
	return importElements(elements, func(raw json.RawMessage) bool {
		var in incomingRoute
		if err := json.Unmarshal(raw, &in); err != nil || !in.valid() {
			return false
		}
		s.Add(in.record())
		return true
	})
}

// decodeArray splits the payload into its array elements,
// distinguishing unparseable data from a wrong top-level shape.
func decodeArray(data []byte) ([]json.RawMessage, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, ok := top.([]any); !ok {
		return nil, ErrFormat
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, ErrFormat
	}
	return elements, nil
}

func importElements(elements []json.RawMessage, accept func(json.RawMessage) bool) (Report, error) {
	report := Report{Total: len(elements)}
	for _, raw := range elements {
		if accept(raw) {
			report.Imported++
		} else {
			report.Skipped++
		}
	}
	if report.Imported == 0 {
		return Report{}, ErrNoValidRecords
	}
	return report, nil
}

// incomingMarker is the loose shape an imported marker element is
// decoded into. Fixed-size decoding would silently zero-fill short
// coordinate arrays, so Location stays a slice until validated.
type incomingMarker struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Location    []float64 `json:"location"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Major       bool      `json:"major"`
}

func (in incomingMarker) valid() bool {
	return in.Name != "" && in.Type != "" && len(in.Location) == 2
}

func (in incomingMarker) record() model.MarkerRecord {
	typ := model.MarkerType(in.Type)
	if !model.ValidMarkerType(typ) {
		typ = model.MarkerUnknown
	}
	return model.MarkerRecord{
		Name:        in.Name,
		Type:        typ,
		Location:    model.Point{in.Location[0], in.Location[1]},
		Description: in.Description,
		Link:        in.Link,
		Major:       in.Major,
	}
}

type incomingRoute struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Path        [][]float64 `json:"path"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Width       int         `json:"width"`
}

func (in incomingRoute) valid() bool {
	if in.Name == "" || len(in.Path) < 2 {
		return false
	}
	for _, p := range in.Path {
		if len(p) != 2 {
			return false
		}
	}
	return true
}

func (in incomingRoute) record() model.RouteRecord {
	typ := model.RouteType(in.Type)
	if !model.ValidRouteType(typ) {
		typ = model.RouteCustom
	}
	color := in.Color
	if color != "" && !util.ValidHexColor(color) {
		color = ""
	}
	width := in.Width
	if width < 0 {
		width = 0
	}
	path := make([]model.Point, len(in.Path))
	for i, p := range in.Path {
		path[i] = model.Point{p[0], p[1]}
	}
	return model.RouteRecord{
		Name:        in.Name,
		Type:        typ,
		Path:        path,
		Description: in.Description,
		Color:       color,
		Width:       width,
	}
}
