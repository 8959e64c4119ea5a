package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/core"
	"github.com/quarryengine/quarry/engine/events"
	"github.com/quarryengine/quarry/engine/gfx/spritebatch"
	"github.com/quarryengine/quarry/engine/sorting"
	"github.com/quarryengine/quarry/engine/world"
)

// demoWorld is a procedural chunk store for the sandbox. It satisfies both
// the streaming side (world.ChunkStore) and the rendering side
// (sorting.Storage).
type demoWorld struct {
	mu     sync.Mutex
	chunks map[[2]int]*world.Chunk
	objs   []sorting.Object
	bus    *events.Bus
	batch  *spritebatch.Batch
}

func newDemoWorld(bus *events.Bus, batch *spritebatch.Batch) *demoWorld {
	return &demoWorld{
		chunks: make(map[[2]int]*world.Chunk),
		bus:    bus,
		batch:  batch,
	}
}

func (w *demoWorld) Chunk(x, y int) *world.Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chunks[[2]int{x, y}]
}

func (w *demoWorld) LoadChunk(x, y int) {
	w.mu.Lock()
	if _, ok := w.chunks[[2]int{x, y}]; ok {
		w.mu.Unlock()
		return
	}
	w.chunks[[2]int{x, y}] = &world.Chunk{X: x, Y: y}
	w.objs = append(w.objs, w.generate(x, y)...)
	w.mu.Unlock()

	w.bus.Publish(events.RenderStorageChanged)
}

func (w *demoWorld) Center() world.Point {
	return world.Point{
		X: world.ChunkGameWidth / 2,
		Y: world.ChunkGameDepth / 2,
		Z: world.GameEdgeLength2 * world.ChunkBlocksZ,
	}
}

func (w *demoWorld) Objects() []sorting.Object {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.objs
}

// AddObject registers an extra renderable, like the wanderer.
func (w *demoWorld) AddObject(o sorting.Object) {
	w.mu.Lock()
	w.objs = append(w.objs, o)
	w.mu.Unlock()
	w.bus.Publish(events.RenderStorageChanged)
}

// generate builds a sparse grid of tiles with a deterministic per-chunk
// height field.
func (w *demoWorld) generate(cx, cy int) []sorting.Object {
	rng := rand.New(rand.NewSource(int64(cx)*73856093 ^ int64(cy)*19349663))

	tiles := make([]sorting.Object, 0, world.ChunkBlocksX*world.ChunkBlocksY/16)
	for by := 0; by < world.ChunkBlocksY; by += 4 {
		for bx := 0; bx < world.ChunkBlocksX; bx++ {
			gx := float32(cx*world.ChunkBlocksX+bx) * world.GameDiagLength
			gy := float32(cy*world.ChunkBlocksY+by) * world.GameDiagLength2
			h := rng.Intn(3)
			shade := 0.5 + 0.5*float32(h)/2
			tiles = append(tiles, &tile{
				batch: w.batch,
				pos:   world.Point{X: gx, Y: gy, Z: float32(h) * world.GameEdgeLength},
				col:   colors.Color{0.2, 0.8, 0.3, 1}.Scaled(shade),
			})
		}
	}
	return tiles
}

// tile is one static block sprite.
type tile struct {
	batch *spritebatch.Batch
	pos   world.Point
	col   colors.Color
}

func (t *tile) Position() world.Point { return t.pos }

func (t *tile) Render() {
	vx := t.pos.ViewSpcX()
	vy := t.pos.ViewSpcY()
	// the combined transform halves and flips Y, so pre-scale by -2
	t.batch.DrawQuad(vx, -2*vy, world.CellViewWidth, 2*world.CellViewHeight, t.col)
}

// wanderer is a moving focus target circling the map center.
type wanderer struct {
	batch  *spritebatch.Batch
	tex    core.Texture // nil draws a plain quad
	center world.Point
	pos    world.Point
	t      float64
}

func newWanderer(batch *spritebatch.Batch, center world.Point, tex core.Texture) *wanderer {
	return &wanderer{batch: batch, tex: tex, center: center, pos: center}
}

func (w *wanderer) update(dt float64) {
	w.t += dt
	const radius = 4 * world.GameDiagLength
	w.pos = w.center.Add(
		radius*float32(math.Cos(w.t*0.3)),
		radius*float32(math.Sin(w.t*0.3)),
		0,
	)
}

func (w *wanderer) HasPosition() bool         { return true }
func (w *wanderer) Position() world.Point     { return w.pos }
func (w *wanderer) DimensionZ() float32       { return world.GameEdgeLength }
func (w *wanderer) Name() string              { return "wanderer" }
func (w *wanderer) Translate(x, y, z float32) { w.center = w.center.Add(x, y, z) }

func (w *wanderer) Render() {
	vx := w.pos.ViewSpcX()
	vy := w.pos.ViewSpcY()
	if w.tex != nil {
		w.batch.DrawTexturedQuad(vx, -2*vy, world.CellViewWidth/2, world.CellViewHeight, w.tex, colors.White)
		return
	}
	w.batch.DrawQuad(vx, -2*vy, world.CellViewWidth/2, world.CellViewHeight, colors.Yellow)
}
