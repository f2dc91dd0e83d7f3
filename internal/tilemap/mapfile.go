package tilemap

import (
	"encoding/json"
	"fmt"
	"os"
)

// TileJSON is one non-default tile entry in a map file.
type TileJSON struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Type int  `json:"type"`
	Gfx  *int `json:"gfx,omitempty"`
}

// FoodSpawnerJSON is one food-spawner entry in a map file.
type FoodSpawnerJSON struct {
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Radius     int   `json:"radius"`
	Amount     int   `json:"amount"`
	IntervalMS int64 `json:"interval"`
}

// MapJSON is the on-disk map format: a sparse tile list plus optional
// KoTH override and food spawners.
type MapJSON struct {
	Name          string            `json:"name,omitempty"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	KothX         *int              `json:"koth_x,omitempty"`
	KothY         *int              `json:"koth_y,omitempty"`
	Tiles         []TileJSON        `json:"tiles"`
	FoodSpawners  []FoodSpawnerJSON `json:"food_spawners,omitempty"`
}

// LoadMapFile reads and parses a JSON map file from disk.
func LoadMapFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	return LoadMapJSON(data)
}

// LoadMapJSON parses map bytes into a World, validating dimensions and
// tile bounds the way the original engine's loader does.
func LoadMapJSON(data []byte) (*World, error) {
	var doc MapJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return &World{}, &MapLoadError{Reason: "width and height must be positive"}
	}

	w := NewWorld(doc.Width, doc.Height)

	for _, t := range doc.Tiles {
		if !w.IsOnMap(t.X, t.Y) {
			return &World{}, &MapLoadError{Reason: fmt.Sprintf("tile (%d,%d) out of bounds", t.X, t.Y)}
		}
		i := w.index(t.X, t.Y)
		w.Tiles[i].Type = TileType(t.Type)
		if t.Gfx != nil {
			w.Tiles[i].Gfx = TileType(*t.Gfx)
		} else {
			w.Tiles[i].Gfx = TileType(t.Type)
		}
	}

	if doc.KothX != nil && doc.KothY != nil {
		w.KothX, w.KothY = *doc.KothX, *doc.KothY
	} else {
		w.KothX, w.KothY = doc.Width/2, doc.Height/2
	}

	for _, fs := range doc.FoodSpawners {
		w.Spawners = append(w.Spawners, FoodSpawner{
			X: fs.X, Y: fs.Y, Radius: fs.Radius, Amount: fs.Amount, IntervalMS: fs.IntervalMS,
		})
	}

	return w, nil
}
