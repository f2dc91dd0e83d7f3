package tilemap

import "container/heap"

// pathNode is one A* open/closed-set entry, adapted from the teacher's
// nodeHeap/pathNode pair but keyed on tile coordinates instead of the
// teacher's pixel/tile-mixed scheme.
type pathNode struct {
	x, y   int
	gCost  int
	hCost  int
	fCost  int
	parent *pathNode
	index  int
}

type nodeHeap []*pathNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any) {
	n := len(*h)
	node := x.(*pathNode)
	node.index = n
	*h = append(*h, node)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

func manhattan(x1, y1, x2, y2 int) int {
	return absInt(x2-x1) + absInt(y2-y1)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FindPath runs 4-connected A* from (startX, startY) to (goalX, goalY)
// and returns the pixel-space waypoints from (exclusive of the start
// tile) through the goal tile's center. A nil, non-empty-origin result
// means no path exists; the same-tile case returns a single waypoint at
// the destination's center.
func (w *World) FindPath(startX, startY, goalX, goalY int) []Pos {
	if !w.IsWalkable(startX, startY) || !w.IsWalkable(goalX, goalY) {
		return nil
	}
	if startX == goalX && startY == goalY {
		return []Pos{{X: TileCenter(startX), Y: TileCenter(startY)}}
	}

	open := &nodeHeap{}
	heap.Init(open)
	start := &pathNode{x: startX, y: startY, hCost: manhattan(startX, startY, goalX, goalY)}
	start.fCost = start.hCost
	heap.Push(open, start)

	type key struct{ x, y int }
	best := map[key]int{{startX, startY}: 0}
	closed := map[key]bool{}

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		k := key{current.x, current.y}
		if closed[k] {
			continue
		}
		closed[k] = true

		if current.x == goalX && current.y == goalY {
			return reconstructPath(current)
		}

		for _, d := range dirs {
			nx, ny := current.x+d[0], current.y+d[1]
			if !w.IsWalkable(nx, ny) {
				continue
			}
			nk := key{nx, ny}
			if closed[nk] {
				continue
			}
			g := current.gCost + 1
			if prev, ok := best[nk]; ok && g >= prev {
				continue
			}
			best[nk] = g
			node := &pathNode{
				x: nx, y: ny,
				gCost:  g,
				hCost:  manhattan(nx, ny, goalX, goalY),
				parent: current,
			}
			node.fCost = node.gCost + node.hCost
			heap.Push(open, node)
		}
	}
	return nil
}

// reconstructPath walks parent pointers back to (but excluding) the
// start node and returns pixel-center waypoints from there to the goal.
func reconstructPath(node *pathNode) []Pos {
	var tiles []Pos
	for n := node; n != nil && n.parent != nil; n = n.parent {
		tiles = append(tiles, Pos{X: n.x, Y: n.y})
	}
	for i, j := 0, len(tiles)-1; i < j; i, j = i+1, j-1 {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
	path := make([]Pos, len(tiles))
	for i, t := range tiles {
		path[i] = Pos{X: TileCenter(t.X), Y: TileCenter(t.Y)}
	}
	return path
}
