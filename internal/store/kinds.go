package store

import (
	"github.com/lorescape/waymark/internal/builtin"
	"github.com/lorescape/waymark/internal/model"
)

// Markers returns the kind descriptor for marker records.
func Markers() Kind[model.MarkerRecord] {
	return Kind[model.MarkerRecord]{
		Name:       "marker",
		StorageKey: "custom-markers",
		Builtin:    builtin.Markers(),
		ID:         func(m model.MarkerRecord) string { return m.ID },
		Subtype: func(m model.MarkerRecord) string {
			if m.Type == "" {
				return string(model.MarkerUnknown)
			}
			return string(m.Type)
		},
		Stamp: func(m *model.MarkerRecord, id string, createdAt int64) {
			if m.Type == "" {
				m.Type = model.MarkerUnknown
			}
			m.ID = id
			m.IsCustom = true
			m.CreatedAt = createdAt
		},
	}
}

// Routes returns the kind descriptor for route records.
func Routes() Kind[model.RouteRecord] {
	return Kind[model.RouteRecord]{
		Name:       "route",
		StorageKey: "custom-routes",
		Builtin:    builtin.Routes(),
		ID:         func(r model.RouteRecord) string { return r.ID },
		Subtype: func(r model.RouteRecord) string {
			if r.Type == "" {
				return string(model.RouteCustom)
			}
			return string(r.Type)
		},
		Stamp: func(r *model.RouteRecord, id string, createdAt int64) {
			model.ApplyRouteDefaults(r)
			r.ID = id
			r.IsCustom = true
			r.CreatedAt = createdAt
		},
	}
}
