// Command arena-mapgen generates a random JSON map file using the
// engine's cellular-automata map generator.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"

	"arena/internal/tilemap"
)

func main() {
	width := flag.Int("width", 40, "map width in tiles")
	height := flag.Int("height", 40, "map height in tiles")
	density := flag.Float64("density", 0.4, "wall density [0,0.6]")
	foodSpots := flag.Int("food-spots", 6, "number of food spawners")
	foodAmount := flag.Int("food-amount", 6000, "total food budget across spawners")
	seed := flag.Int64("seed", 1, "RNG seed")
	out := flag.String("out", "maps/generated.json", "output path")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	world := tilemap.GenerateRandom(tilemap.GenerateParams{
		Width: *width, Height: *height, WallDensity: *density,
		NumFoodSpots: *foodSpots, FoodAmount: *foodAmount, SpawnerRadius: 3, SpawnInterval: 5000,
	}, rng.Float64, rng.Intn)

	doc := worldToJSON(world)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("marshal map: %v", err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("write map: %v", err)
	}
	log.Printf("wrote %dx%d map to %s", *width, *height, *out)
}

func worldToJSON(w *tilemap.World) tilemap.MapJSON {
	doc := tilemap.MapJSON{Width: w.Width, Height: w.Height}
	kx, ky := w.KothX, w.KothY
	doc.KothX, doc.KothY = &kx, &ky
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.GetType(x, y) == tilemap.TilePlain {
				doc.Tiles = append(doc.Tiles, tilemap.TileJSON{X: x, Y: y, Type: int(tilemap.TilePlain)})
			}
		}
	}
	for _, sp := range w.Spawners {
		doc.FoodSpawners = append(doc.FoodSpawners, tilemap.FoodSpawnerJSON{
			X: sp.X, Y: sp.Y, Radius: sp.Radius, Amount: sp.Amount, IntervalMS: sp.IntervalMS,
		})
	}
	return doc
}
