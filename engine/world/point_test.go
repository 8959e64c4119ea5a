package world

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestViewSpc(t *testing.T) {
	tests := []struct {
		name  string
		p     Point
		wantX float32
		wantY float32
	}{
		{"origin", Point{}, 0, 0},
		{"x passes through", Point{X: 123}, 123, 0},
		{"one cell south", Point{Y: GameDiagLength}, 0, -CellViewDepth},
		{"one edge up", Point{Z: GameEdgeLength}, 0, CellViewHeight},
		{"depth and height fold", Point{Y: GameDiagLength, Z: GameEdgeLength}, 0, CellViewHeight - CellViewDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.ViewSpcX(); !near(got, tt.wantX) {
				t.Errorf("ViewSpcX() = %v, want %v", got, tt.wantX)
			}
			if got := tt.p.ViewSpcY(); !near(got, tt.wantY) {
				t.Errorf("ViewSpcY() = %v, want %v", got, tt.wantY)
			}
		})
	}
}

func TestChunkCoords(t *testing.T) {
	tests := []struct {
		name  string
		p     Point
		wantX int
		wantY int
	}{
		{"origin", Point{}, 0, 0},
		{"inside first chunk", Point{X: ChunkGameWidth - 1, Y: ChunkGameDepth - 1}, 0, 0},
		{"first step east", Point{X: ChunkGameWidth}, 1, 0},
		{"negative floors down", Point{X: -1, Y: -1}, -1, -1},
		{"far negative", Point{X: -ChunkGameWidth - 1, Y: -2 * ChunkGameDepth}, -2, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.ChunkX(); got != tt.wantX {
				t.Errorf("ChunkX() = %d, want %d", got, tt.wantX)
			}
			if got := tt.p.ChunkY(); got != tt.wantY {
				t.Errorf("ChunkY() = %d, want %d", got, tt.wantY)
			}
		})
	}
}

// The paging grid is defined in view space. A point's game-space chunk Y
// must agree with the chunk its projected view Y falls into, or a store
// keyed by Point.ChunkY would disagree with what the camera pages.
func TestChunkYMatchesViewGrid(t *testing.T) {
	if got := ChunkGameDepth * ProjectionFactorY; got != ChunkViewDepth {
		t.Fatalf("ChunkGameDepth*ProjectionFactorY = %v, want %v", got, float32(ChunkViewDepth))
	}
	for _, y := range []float32{0, ChunkGameDepth - 1, ChunkGameDepth, 6500, 3 * ChunkGameDepth} {
		p := Point{Y: y}
		fromView := int(math.Floor(float64(-p.ViewSpcY()) / ChunkViewDepth))
		if got := p.ChunkY(); got != fromView {
			t.Errorf("Point{Y: %v}.ChunkY() = %d, view grid says %d", y, got, fromView)
		}
	}
}

func TestAdd(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}.Add(10, 20, 30)
	want := Point{X: 11, Y: 22, Z: 33}
	if p != want {
		t.Fatalf("Add = %+v, want %+v", p, want)
	}
}
