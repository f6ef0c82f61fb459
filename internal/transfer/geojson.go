package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/lorescape/waymark/internal/model"
	"github.com/lorescape/waymark/internal/store"
)

// Fixed filenames for GeoJSON exports.
const (
	MarkersGeoJSONFilename = "custom-markers.geojson"
	RoutesGeoJSONFilename  = "custom-routes.geojson"
)

// GeoJSON positions are [x, y] while record coordinates are [lat, lon],
// so x maps to Location[1] and y to Location[0].

// ExportMarkersGeoJSON writes the custom markers as a GeoJSON
// FeatureCollection of Points to dir/custom-markers.geojson.
func ExportMarkersGeoJSON(s *store.Store[model.MarkerRecord], dir string) (string, error) {
	customs := s.Custom()
	if len(customs) == 0 {
		return "", ErrNoRecords
	}

	fc := make(geom.GeoJSONFeatureCollection, 0, len(customs))
	for _, m := range customs {
		pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: m.Location.Lon(), Y: m.Location.Lat()}})
		if err != nil {
			return "", fmt.Errorf("failed to encode marker %s: %w", m.ID, err)
		}
		props := map[string]any{
			"name":  m.Name,
			"type":  string(m.Type),
			"major": m.Major,
		}
		if m.Description != "" {
			props["description"] = m.Description
		}
		if m.Link != "" {
			props["link"] = m.Link
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry:   pt.AsGeometry(),
			ID:         m.ID,
			Properties: props,
		})
	}
	return writeGeoJSON(fc, dir, MarkersGeoJSONFilename)
}

// ExportRoutesGeoJSON writes the custom routes as a GeoJSON
// FeatureCollection of LineStrings to dir/custom-routes.geojson.
func ExportRoutesGeoJSON(s *store.Store[model.RouteRecord], dir string) (string, error) {
	customs := s.Custom()
	if len(customs) == 0 {
		return "", ErrNoRecords
	}

	fc := make(geom.GeoJSONFeatureCollection, 0, len(customs))
	for _, r := range customs {
		flat := make([]float64, 0, len(r.Path)*2)
		for _, p := range r.Path {
			flat = append(flat, p.Lon(), p.Lat())
		}
		ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
		if err != nil {
			return "", fmt.Errorf("failed to encode route %s: %w", r.ID, err)
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: ls.AsGeometry(),
			ID:       r.ID,
			Properties: map[string]any{
				"name":        r.Name,
				"type":        string(r.Type),
				"description": r.Description,
				"color":       r.Color,
				"width":       r.Width,
			},
		})
	}
	return writeGeoJSON(fc, dir, RoutesGeoJSONFilename)
}

func writeGeoJSON(fc geom.GeoJSONFeatureCollection, dir, filename string) (string, error) {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode feature collection: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// geoFeature is the loose shape imported GeoJSON features are decoded
// into. Geometry coordinates stay raw until the geometry type is
// known.
type geoFeature struct {
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

// ImportMarkersGeoJSON imports Point features from a GeoJSON
// FeatureCollection. Non-Point features and features without a name
// property are skipped.
func ImportMarkersGeoJSON(s *store.Store[model.MarkerRecord], data []byte) (Report, error) {
	features, err := decodeFeatureCollection(data)
	if err != nil {
		return Report{}, err
	}

	report := Report{Total: len(features)}
	for _, f := range features {
		var coords []float64
		if f.Geometry.Type != "Point" || json.Unmarshal(f.Geometry.Coordinates, &coords) != nil || len(coords) != 2 {
			report.Skipped++
			continue
		}
		in := incomingMarker{
			Name:        propString(f.Properties, "name"),
			Type:        propString(f.Properties, "type"),
			Location:    []float64{coords[1], coords[0]},
			Description: propString(f.Properties, "description"),
			Link:        propString(f.Properties, "link"),
			Major:       propBool(f.Properties, "major"),
		}
		if !in.valid() {
			report.Skipped++
			continue
		}
		s.Add(in.record())
		report.Imported++
	}
	if report.Imported == 0 {
		return Report{}, ErrNoValidRecords
	}
	return report, nil
}

// ImportRoutesGeoJSON imports LineString features from a GeoJSON
// FeatureCollection, with the same contract as ImportMarkersGeoJSON.
func ImportRoutesGeoJSON(s *store.Store[model.RouteRecord], data []byte) (Report, error) {
	features, err := decodeFeatureCollection(data)
	if err != nil {
		return Report{}, err
	}

	report := Report{Total: len(features)}
	for _, f := range features {
		var coords [][]float64
		if f.Geometry.Type != "LineString" || json.Unmarshal(f.Geometry.Coordinates, &coords) != nil {
			report.Skipped++
			continue
		}
		path := make([][]float64, 0, len(coords))
		for _, c := range coords {
			if len(c) != 2 {
				path = nil
				break
			}
			path = append(path, []float64{c[1], c[0]})
		}
		in := incomingRoute{
			Name:        propString(f.Properties, "name"),
			Type:        propString(f.Properties, "type"),
			Path:        path,
			Description: propString(f.Properties, "description"),
			Color:       propString(f.Properties, "color"),
			Width:       propInt(f.Properties, "width"),
		}
		if !in.valid() {
			report.Skipped++
			continue
		}
		s.Add(in.record())
		report.Imported++
	}
	if report.Imported == 0 {
		return Report{}, ErrNoValidRecords
	}
	return report, nil
}

func decodeFeatureCollection(data []byte) ([]geoFeature, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var fc geoCollection
	if err := json.Unmarshal(data, &fc); err != nil || fc.Type != "FeatureCollection" {
		return nil, ErrFormat
	}
	return fc.Features, nil
}

func propString(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func propBool(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

func propInt(props map[string]any, key string) int {
	// JSON numbers decode as float64.
	f, _ := props[key].(float64)
	return int(f)
}
