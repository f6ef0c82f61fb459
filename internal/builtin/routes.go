package builtin

import "github.com/lorescape/waymark/internal/model"

// Routes returns the built-in route dataset in its fixed presentation
// order. Callers receive a fresh slice but must not mutate the records.
func Routes() []model.RouteRecord {
	out := make([]model.RouteRecord, len(defaultRoutes))
	copy(out, defaultRoutes)
	return out
}

var defaultRoutes = []model.RouteRecord{
	{
		ID:   "royal-road",
		Name: "Royal Road",
		Path: []model.Point{
			{-50, 100}, // Capital City
			{-40, 60},  // Trading Town
			{-30, 80},  // Riverside Village
		},
		Type:        model.RouteMain,
		Description: "The main trade route connecting the capital to the coastal regions.",
		Color:       "#FFD700",
		Width:       4,
	},
	{
		ID:   "mountain-path",
		Name: "Mountain Path",
		Path: []model.Point{
			{-50, 100}, // Capital City
			{-80, 120}, // Mountain Fort
		},
		Type:        model.RouteMain,
		Description: "A treacherous mountain path leading to the ancient fortress.",
		Color:       "#8B4513",
		Width:       3,
	},
	{
		ID:   "river-trail",
		Name: "River Trail",
		Path: []model.Point{
			{-30, 80},  // Riverside Village
			{-20, 140}, // Golden Farm
			{-60, 160}, // Abandoned Dungeon
		},
		Type:        model.RouteSecondary,
		Description: "A winding trail that follows the river through fertile lands.",
		Color:       "#4169E1",
		Width:       2,
	},
	{
		ID:   "ancient-way",
		Name: "Ancient Way",
		Path: []model.Point{
			{-90, 40},   // Ancient Portal
			{-120, 60},  // Dark Cave
			{-150, 100}, // Mysterious Ruins
		},
		Type:        model.RouteSecret,
		Description: "An ancient path that connects mystical locations, known only to few.",
		Color:       "#9932CC",
		Width:       2,
	},
	{
		ID:   "trade-route",
		Name: "Trade Route",
		Path: []model.Point{
			{-40, 60},  // Trading Town
			{-20, 140}, // Golden Farm
		},
		Type:        model.RouteSecondary,
		Description: "A busy trade route connecting the trading town to the farmlands.",
		Color:       "#228B22",
		Width:       3,
	},
}
