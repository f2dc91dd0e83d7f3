package tilemap

import "testing"

func TestIsWithinBorderExcludesOuterRing(t *testing.T) {
	w := NewWorld(10, 10)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 5, false},
		{9, 5, false},
		{5, 0, false},
		{5, 9, false},
		{5, 5, true},
		{1, 1, true},
	}
	for _, c := range cases {
		if got := w.IsWithinBorder(c.x, c.y); got != c.want {
			t.Errorf("IsWithinBorder(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestSetTypeOnlyAcceptsPlainWithinBorder(t *testing.T) {
	w := NewWorld(10, 10)
	w.SetType(0, 5, TilePlain) // border, rejected
	if w.GetType(0, 5) != TileSolid {
		t.Fatalf("border tile became walkable")
	}
	w.SetType(5, 5, TilePlain)
	if w.GetType(5, 5) != TilePlain {
		t.Fatalf("interior tile did not become plain")
	}
	w.SetType(5, 5, TileSolid) // only TilePlain is ever accepted
	if w.GetType(5, 5) != TilePlain {
		t.Fatalf("SetType accepted a non-plain type")
	}
}

func TestFoodClampedToRange(t *testing.T) {
	w := NewWorld(10, 10)
	delta := w.AddFood(5, 5, 20000)
	if delta != MaxTileFood {
		t.Fatalf("AddFood delta = %d, want %d", delta, MaxTileFood)
	}
	if w.GetFood(5, 5) != MaxTileFood {
		t.Fatalf("food not clamped to max")
	}
	eaten := w.EatFood(5, 5, 1_000_000)
	if eaten != MaxTileFood {
		t.Fatalf("EatFood = %d, want %d", eaten, MaxTileFood)
	}
	if w.GetFood(5, 5) != 0 {
		t.Fatalf("food not clamped to zero")
	}
}

func TestFindPathSameTile(t *testing.T) {
	w := NewWorld(10, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			w.SetType(x, y, TilePlain)
		}
	}
	path := w.FindPath(5, 5, 5, 5)
	if len(path) != 1 {
		t.Fatalf("len(path) = %d, want 1", len(path))
	}
	want := Pos{X: TileCenter(5), Y: TileCenter(5)}
	if path[0] != want {
		t.Fatalf("path[0] = %+v, want %+v", path[0], want)
	}
}

func TestFindPathAroundWall(t *testing.T) {
	w := NewWorld(10, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			w.SetType(x, y, TilePlain)
		}
	}
	// Build a wall across the middle with a gap at x=8.
	for x := 1; x < 8; x++ {
		w.Tiles[w.index(x, 5)] = Tile{Type: TileSolid, Gfx: TileGfxSolid}
	}
	path := w.FindPath(2, 2, 2, 8)
	if path == nil {
		t.Fatalf("FindPath returned nil, want a path around the wall")
	}
	last := path[len(path)-1]
	if last != (Pos{X: TileCenter(2), Y: TileCenter(8)}) {
		t.Fatalf("last waypoint = %+v, want goal center", last)
	}
}

func TestFindPathUnreachableReturnsNil(t *testing.T) {
	w := NewWorld(10, 10)
	w.SetType(2, 2, TilePlain)
	w.SetType(7, 7, TilePlain)
	if path := w.FindPath(2, 2, 7, 7); path != nil {
		t.Fatalf("FindPath = %v, want nil (unreachable)", path)
	}
}

func TestLoadMapJSONRejectsOutOfBoundsTile(t *testing.T) {
	data := []byte(`{"width":5,"height":5,"tiles":[{"x":10,"y":10,"type":1}]}`)
	_, err := LoadMapJSON(data)
	if err == nil {
		t.Fatalf("expected an error for an out-of-bounds tile")
	}
}

func TestLoadMapJSONDefaultsKothToCenter(t *testing.T) {
	data := []byte(`{"width":10,"height":10,"tiles":[]}`)
	w, err := LoadMapJSON(data)
	if err != nil {
		t.Fatalf("LoadMapJSON: %v", err)
	}
	if w.KothX != 5 || w.KothY != 5 {
		t.Fatalf("KoTH = (%d,%d), want (5,5)", w.KothX, w.KothY)
	}
}
