package level

import (
	"math/rand"
	"testing"
)

func TestRandomClearsPlacements(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 20; trial++ {
		l := Random(rng, 8, 0.9, 3)

		if l.PlayerStart == nil || l.PursuerStart == nil {
			t.Fatal("Random() left a start cell unset")
		}
		if l.Wall(l.PlayerStart.X, l.PlayerStart.Y) {
			t.Errorf("player start %v is a wall", *l.PlayerStart)
		}
		if l.Wall(l.PursuerStart.X, l.PursuerStart.Y) {
			t.Errorf("pursuer start %v is a wall", *l.PursuerStart)
		}
		if len(l.Objects) != 3 {
			t.Fatalf("got %d objects, want 3", len(l.Objects))
		}
		for _, obj := range l.Objects {
			if l.Wall(obj.X, obj.Y) {
				t.Errorf("object cell %v is a wall", obj)
			}
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(11)), 10, 0.2, 2)
	b := Random(rand.New(rand.NewSource(11)), 10, 0.2, 2)

	for i := range a.Walls {
		if a.Walls[i] != b.Walls[i] {
			t.Fatalf("wall grids diverge at cell %d for the same seed", i)
		}
	}
	if *a.PlayerStart != *b.PlayerStart || *a.PursuerStart != *b.PursuerStart {
		t.Error("start cells diverge for the same seed")
	}
}

func TestWallOutOfBounds(t *testing.T) {
	l := &Layout{Walls: make([]bool, 4), Size: 2}

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, false},
		{1, 1, false},
		{-1, 0, true},
		{0, -1, true},
		{2, 0, true},
		{0, 2, true},
	}
	for _, tt := range tests {
		if got := l.Wall(tt.x, tt.y); got != tt.want {
			t.Errorf("Wall(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellToWorld(t *testing.T) {
	x, y := CellToWorld(GridVec{X: 3, Y: 5})
	if x != 3*CellSize || y != 5*CellSize {
		t.Errorf("CellToWorld(3, 5) = (%f, %f), want (%f, %f)", x, y, 3*CellSize, 5*CellSize)
	}
}

// TestParseFlipsRows checks that the top-row-first file format lands in the
// engine's bottom-up order.
func TestParseFlipsRows(t *testing.T) {
	data := []byte(`{
		"size": 2,
		"walls": [1, 0,
		          0, 0],
		"player_start": {"x": 0, "y": 0},
		"pursuer_start": {"x": 1, "y": 0}
	}`)

	l, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	// File cell (0, top) becomes engine cell (0, 1).
	if !l.Wall(0, 1) {
		t.Error("expected wall at engine cell (0, 1)")
	}
	for _, c := range [][2]int{{0, 0}, {1, 0}, {1, 1}} {
		if l.Wall(c[0], c[1]) {
			t.Errorf("unexpected wall at engine cell (%d, %d)", c[0], c[1])
		}
	}
	if l.PlayerStart == nil || l.PlayerStart.X != 0 {
		t.Error("player start not decoded")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"zero size", `{"size": 0, "walls": []}`},
		{"wall count mismatch", `{"size": 3, "walls": [0, 0, 0]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() accepted invalid input")
			}
		})
	}
}
