package tilemap

// GenerateParams configures random map generation.
type GenerateParams struct {
	Width, Height  int
	WallDensity    float64 // probability an interior cell seeds solid
	NumFoodSpots   int
	FoodAmount     int
	SpawnerRadius  int // clamped to [2,4] per spot when scattering
	SpawnInterval  int64
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GenerateRandom builds a map by seeding random solid/plain cells, then
// smoothing with cellular automata, keeping only the largest connected
// plain region, and scattering food spawners — following the original
// engine's random-map algorithm.
func GenerateRandom(p GenerateParams, randFloat func() float64, randIntn func(int) int) *World {
	width := clampInt(p.Width, 20, 64)
	height := clampInt(p.Height, 20, 64)
	density := clampFloat(p.WallDensity, 0, 0.6)

	w := NewWorld(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := w.index(x, y)
			if randFloat() < density {
				w.Tiles[i] = Tile{Type: TileSolid, Gfx: TileGfxSolid}
			} else {
				w.Tiles[i] = Tile{Type: TilePlain, Gfx: TileGfxPlain}
			}
		}
	}

	for pass := 0; pass < 5; pass++ {
		smoothOnce(w)
	}

	keepLargestRegion(w)

	// Snap KoTH to the plain tile closest to map center.
	cx, cy := width/2, height/2
	bestDist := -1
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if w.GetType(x, y) != TilePlain {
				continue
			}
			d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			if bestDist == -1 || d < bestDist {
				bestDist = d
				w.KothX, w.KothY = x, y
			}
		}
	}

	scatterFoodSpawners(w, p, randIntn)

	return w
}

func smoothOnce(w *World) {
	next := make([]TileType, len(w.Tiles))
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			i := w.index(x, y)
			if x == 0 || y == 0 || x == w.Width-1 || y == w.Height-1 {
				next[i] = TileSolid
				continue
			}
			solidNeighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if w.GetType(x+dx, y+dy) == TileSolid {
						solidNeighbors++
					}
				}
			}
			switch {
			case solidNeighbors >= 5:
				next[i] = TileSolid
			case solidNeighbors <= 3:
				next[i] = TilePlain
			default:
				next[i] = w.Tiles[i].Type
			}
		}
	}
	for i, t := range next {
		w.Tiles[i].Type = t
		if t == TileSolid {
			w.Tiles[i].Gfx = TileGfxSolid
		} else {
			w.Tiles[i].Gfx = TileGfxPlain
		}
	}
}

// keepLargestRegion flood-fills connected plain regions and converts
// every cell not in the largest region back to solid.
func keepLargestRegion(w *World) {
	visited := make([]bool, len(w.Tiles))
	var best []int

	for start := 0; start < len(w.Tiles); start++ {
		if visited[start] || w.Tiles[start].Type != TilePlain {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var region []int
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			region = append(region, cur)
			cx, cy := cur%w.Width, cur/w.Width
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := cx+d[0], cy+d[1]
				if !w.IsOnMap(nx, ny) {
					continue
				}
				ni := w.index(nx, ny)
				if visited[ni] || w.Tiles[ni].Type != TilePlain {
					continue
				}
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
		if len(region) > len(best) {
			best = region
		}
	}

	keep := make(map[int]bool, len(best))
	for _, i := range best {
		keep[i] = true
	}
	for i := range w.Tiles {
		if w.Tiles[i].Type == TilePlain && !keep[i] {
			w.Tiles[i] = Tile{Type: TileSolid, Gfx: TileGfxSolid}
		}
	}
}

func scatterFoodSpawners(w *World, p GenerateParams, randIntn func(int) int) {
	if p.NumFoodSpots <= 0 {
		return
	}
	var walkable []Pos
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.GetType(x, y) == TilePlain {
				walkable = append(walkable, Pos{X: x, Y: y})
			}
		}
	}
	if len(walkable) == 0 {
		return
	}
	amount := p.FoodAmount / p.NumFoodSpots / 20
	if amount < 1 {
		amount = 1
	}
	interval := p.SpawnInterval
	if interval <= 0 {
		interval = 5000
	}
	for n := 0; n < p.NumFoodSpots; n++ {
		pos := walkable[randIntn(len(walkable))]
		radius := clampInt(p.SpawnerRadius, 2, 4)
		w.Spawners = append(w.Spawners, FoodSpawner{
			X: pos.X, Y: pos.Y, Radius: radius, Amount: amount, IntervalMS: interval,
		})
	}
}
