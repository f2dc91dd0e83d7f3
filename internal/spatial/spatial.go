// Package spatial implements a uniform-grid spatial index over
// creature positions, used for nearest-enemy queries from the script
// sandbox.
package spatial

import "arena/internal/tilemap"

// CellSize is twice the tile size, matching the original engine's grid
// granularity.
const CellSize = 2 * tilemap.TileSize

// Entry is one indexed creature's position and ownership.
type Entry struct {
	ID       uint64
	PlayerID uint64
	X, Y     int
}

// Grid buckets entries into CellSize x CellSize cells for fast
// neighborhood queries.
type Grid struct {
	cells map[[2]int][]Entry
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{cells: make(map[[2]int][]Entry)}
}

func cellOf(x, y int) [2]int {
	return [2]int{x / CellSize, y / CellSize}
}

// Clear empties the grid, ready to be rebuilt for the next tick.
func (g *Grid) Clear() {
	for k := range g.cells {
		delete(g.cells, k)
	}
}

// Insert adds an entry to the grid.
func (g *Grid) Insert(e Entry) {
	c := cellOf(e.X, e.Y)
	g.cells[c] = append(g.cells[c], e)
}

// Rebuild clears and refills the grid from entries, called once per
// tick before any queries.
func (g *Grid) Rebuild(entries []Entry) {
	g.Clear()
	for _, e := range entries {
		g.Insert(e)
	}
}

func distSq(x1, y1, x2, y2 int) int {
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}

// FindNearestEnemy searches outward ring-by-ring from (x, y) for the
// closest entry not owned by excludePlayer, stopping as soon as a ring
// can no longer contain anything closer than the best match found.
func (g *Grid) FindNearestEnemy(x, y int, excludePlayer uint64) (Entry, bool) {
	center := cellOf(x, y)
	var best Entry
	bestDistSq := -1
	maxRing := 0
	for k := range g.cells {
		r := absInt(k[0]-center[0]) + absInt(k[1]-center[1])
		if r > maxRing {
			maxRing = r
		}
	}

	for ring := 0; ring <= maxRing; ring++ {
		if bestDistSq >= 0 {
			minPossible := (ring - 1) * CellSize
			if minPossible > 0 && minPossible*minPossible > bestDistSq {
				break
			}
		}
		for _, cell := range ringCells(center, ring) {
			for _, e := range g.cells[cell] {
				if e.PlayerID == excludePlayer {
					continue
				}
				d := distSq(x, y, e.X, e.Y)
				if bestDistSq < 0 || d < bestDistSq {
					bestDistSq = d
					best = e
				}
			}
		}
	}
	return best, bestDistSq >= 0
}

// ringCells enumerates the cells exactly ring steps (Chebyshev) from
// center, so FindNearestEnemy only scans each ring's border.
func ringCells(center [2]int, ring int) [][2]int {
	if ring == 0 {
		return [][2]int{center}
	}
	var cells [][2]int
	cx, cy := center[0], center[1]
	for dx := -ring; dx <= ring; dx++ {
		cells = append(cells, [2]int{cx + dx, cy - ring}, [2]int{cx + dx, cy + ring})
	}
	for dy := -ring + 1; dy <= ring-1; dy++ {
		cells = append(cells, [2]int{cx - ring, cy + dy}, [2]int{cx + ring, cy + dy})
	}
	return cells
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
