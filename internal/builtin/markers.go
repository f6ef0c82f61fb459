// Package builtin holds the fixed annotation dataset shipped with the
// application. Built-in records are immutable, loaded once, and never
// written to the persistence layer; the store concatenates them ahead of
// the user's custom records.
package builtin

import "github.com/lorescape/waymark/internal/model"

// Markers returns the built-in marker dataset in its fixed presentation
// order. Callers receive a fresh slice but must not mutate the records.
func Markers() []model.MarkerRecord {
	out := make([]model.MarkerRecord, len(defaultMarkers))
	copy(out, defaultMarkers)
	return out
}

var defaultMarkers = []model.MarkerRecord{
	{
		ID:          "capital-city",
		Name:        "Capital City",
		Type:        model.MarkerCity,
		Location:    model.Point{-54.38, 89.63},
		Description: "The grand capital city of the realm, home to the royal palace and bustling markets.",
		Link:        "https://example.com/capital",
		Major:       true,
	},
	{
		ID:          "riverside-village",
		Name:        "Riverside Village",
		Type:        model.MarkerVillage,
		Location:    model.Point{-30, 80},
		Description: "A peaceful village by the river, known for its fishing and boat building.",
		Link:        "https://example.com/riverside",
		Major:       true,
	},
	{
		ID:          "mountain-fort",
		Name:        "Mountain Fort",
		Type:        model.MarkerFort,
		Location:    model.Point{-80, 120},
		Description: "An ancient fortress guarding the mountain pass, now home to a small garrison.",
		Link:        "https://example.com/fort",
		Major:       true,
	},
	{
		ID:          "dark-cave",
		Name:        "Dark Cave",
		Type:        model.MarkerCave,
		Location:    model.Point{-120, 60},
		Description: "A mysterious cave system rumored to contain ancient treasures and dangerous creatures.",
		Link:        "https://example.com/cave",
		Major:       true,
	},
	{
		ID:          "ancient-portal",
		Name:        "Ancient Portal",
		Type:        model.MarkerPortal,
		Location:    model.Point{-90, 40},
		Description: "A magical portal that leads to distant lands. Its power waxes and wanes with the moon.",
		Link:        "https://example.com/portal",
		Major:       true,
	},
	{
		ID:          "abandoned-dungeon",
		Name:        "Abandoned Dungeon",
		Type:        model.MarkerDungeon,
		Location:    model.Point{-60, 160},
		Description: "The ruins of an ancient dungeon, now overrun with monsters and traps.",
		Link:        "https://example.com/dungeon",
		Major:       true,
	},
	{
		ID:          "golden-farm",
		Name:        "Golden Farm",
		Type:        model.MarkerFarm,
		Location:    model.Point{-20, 140},
		Description: "A prosperous farm known for its golden wheat fields and friendly farmers.",
		Link:        "https://example.com/farm",
		Major:       true,
	},
	{
		ID:          "trading-town",
		Name:        "Trading Town",
		Type:        model.MarkerTown,
		Location:    model.Point{-50.88, 72.38},
		Description: "A busy trading town where merchants from all corners of the realm gather.",
		Link:        "https://example.com/town",
		Major:       true,
	},
	{
		ID:          "mysterious-ruins",
		Name:        "Mysterious Ruins",
		Type:        model.MarkerUnknown,
		Location:    model.Point{-150, 100},
		Description: "Ancient ruins whose purpose and origin remain a mystery to scholars.",
		Link:        "https://example.com/ruins",
		Major:       true,
	},
}
