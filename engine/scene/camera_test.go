package scene

import (
	"math"
	"testing"

	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/config"
	"github.com/quarryengine/quarry/engine/events"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/sorting"
	"github.com/quarryengine/quarry/engine/world"
)

// fakeStore tracks load requests without ever completing them, like an async
// loader that has not caught up yet.
type fakeStore struct {
	loaded map[[2]int]bool
	loads  int
	center world.Point
}

func newFakeStore(center world.Point) *fakeStore {
	return &fakeStore{loaded: make(map[[2]int]bool), center: center}
}

func (s *fakeStore) Chunk(x, y int) *world.Chunk {
	if s.loaded[[2]int{x, y}] {
		return &world.Chunk{X: x, Y: y}
	}
	return nil
}

func (s *fakeStore) LoadChunk(x, y int) { s.loads++ }
func (s *fakeStore) Center() world.Point {
	return s.center
}

type fakeStorage struct{ objs []sorting.Object }

func (s *fakeStorage) Objects() []sorting.Object { return s.objs }

// fakeObj renders by advancing the batch write index, the way a sprite
// submission would.
type fakeObj struct {
	pos     world.Point
	batch   *fakeBatch
	renders int
}

func (o *fakeObj) Position() world.Point { return o.pos }
func (o *fakeObj) Render() {
	o.renders++
	if o.batch != nil {
		o.batch.idx += 36
	}
}

type fakeShader struct {
	uniforms map[string][]float32
}

func (f *fakeShader) SetUniformf(name string, values ...float32) {
	if f.uniforms == nil {
		f.uniforms = make(map[string][]float32)
	}
	f.uniforms[name] = values
}

type fakeBatch struct {
	idx        int
	begins     int
	ends       int
	setIdxLog  []int
	projection geom.Mat4
	shader     Shader
}

func (b *fakeBatch) SetProjection(m geom.Mat4) { b.projection = m }
func (b *fakeBatch) SetShader(s Shader)        { b.shader = s }
func (b *fakeBatch) Begin()                    { b.begins++ }
func (b *fakeBatch) End()                      { b.ends++; b.idx = 0 }
func (b *fakeBatch) Idx() int                  { return b.idx }
func (b *fakeBatch) SetIdx(i int) {
	b.idx = i
	b.setIdxLog = append(b.setIdxLog, i)
}

type fakeView struct {
	batch    *fakeBatch
	shader   Shader
	viewport [4]int
	backW    int
	backH    int
}

func (v *fakeView) Batch() Batch   { return v.batch }
func (v *fakeView) Shader() Shader { return v.shader }
func (v *fakeView) SetViewport(x, y, w, h int) {
	v.viewport = [4]int{x, y, w, h}
}
func (v *fakeView) BackBufferSize() (int, int) { return v.backW, v.backH }

// fakeShapeView adds the debug shape capability on top of fakeView.
type fakeShapeView struct {
	fakeView
	lines int
	rects int
}

func (v *fakeShapeView) SetShapeProjection(m geom.Mat4)                   {}
func (v *fakeShapeView) Line(x1, y1, x2, y2 float32, col colors.Color)    { v.lines++ }
func (v *fakeShapeView) RectOutline(x, y, w, h float32, col colors.Color) { v.rects++ }
func (v *fakeShapeView) FlushShapes()                                     {}

type fakeFocus struct {
	pos  world.Point
	dimZ float32
	has  bool
	name string
}

func (f *fakeFocus) HasPosition() bool         { return f.has }
func (f *fakeFocus) Position() world.Point     { return f.pos }
func (f *fakeFocus) DimensionZ() float32       { return f.dimZ }
func (f *fakeFocus) Name() string              { return f.name }
func (f *fakeFocus) Translate(x, y, z float32) { f.pos = f.pos.Add(x, y, z) }

func testEnv(store world.ChunkStore, objs ...sorting.Object) (Env, *config.CVars) {
	cfg := config.NewCVars()
	return Env{
		Store:   store,
		Config:  cfg,
		Bus:     events.NewBus(),
		Storage: &fakeStorage{objs: objs},
	}, cfg
}

func TestNewCameraFocusingRejectsBadTargets(t *testing.T) {
	env, _ := testEnv(newFakeStore(world.Point{}))

	if _, err := NewCameraFocusing(env, 0, 0, 800, 600, nil); err == nil {
		t.Error("want error for nil target")
	}
	ghost := &fakeFocus{name: "ghost", has: false}
	if _, err := NewCameraFocusing(env, 0, 0, 800, 600, ghost); err == nil {
		t.Error("want error for target without position")
	}
}

func TestEnvValidation(t *testing.T) {
	env, _ := testEnv(newFakeStore(world.Point{}))
	env.Store = nil
	if _, err := NewCamera(env, 0, 0, 800, 600); err == nil {
		t.Error("want error for nil store")
	}
}

func TestViewportDimensions(t *testing.T) {
	env, cfg := testEnv(newFakeStore(world.Point{}))
	cfg.SetInt("renderResolutionWidth", 480)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ProjScaling(); got != 800.0/480.0 {
		t.Errorf("ProjScaling = %v, want %v", got, 800.0/480.0)
	}
	if got := c.WorldWidthViewport(); got != 480 {
		t.Errorf("WorldWidthViewport = %d, want 480", got)
	}
	if got := c.WorldHeightViewport(); got != 360 {
		t.Errorf("WorldHeightViewport = %d, want 360", got)
	}

	c.SetZoom(2)
	if got := c.WorldWidthViewport(); got != 240 {
		t.Errorf("WorldWidthViewport at zoom 2 = %d, want 240", got)
	}
	if got := c.WorldHeightViewport(); got != 180 {
		t.Errorf("WorldHeightViewport at zoom 2 = %d, want 180", got)
	}

	// non-positive zoom is clamped, not accepted
	c.SetZoom(-3)
	if got := c.Zoom(); got != 0.05 {
		t.Errorf("Zoom after clamp = %v, want 0.05", got)
	}
}

func TestLeapFollowClampsLag(t *testing.T) {
	target := &fakeFocus{has: true, name: "runner"}
	env, _ := testEnv(newFakeStore(world.Point{}))

	c, err := NewCameraFocusing(env, 0, 0, 800, 600, target)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Position(); got.X != 0 || got.Y != 0 {
		t.Fatalf("initial position = %v, want origin", got)
	}

	target.pos = world.Point{X: 1000}
	c.Update(0.016)

	got := c.Position()
	if math.Abs(float64(got.X)-950) > 0.01 || math.Abs(float64(got.Y)) > 0.01 {
		t.Errorf("position after follow = %v, want (950, 0)", got)
	}

	// within the leap radius nothing moves
	target.pos = world.Point{X: 960}
	c.Update(0.016)
	if got := c.Position(); math.Abs(float64(got.X)-950) > 0.01 {
		t.Errorf("position = %v, want unchanged (950, 0)", got)
	}
}

func TestLoadingRadiusCollapsesAfterFirstPass(t *testing.T) {
	store := newFakeStore(world.Point{})
	env, _ := testEnv(store)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	// 21 columns by 11 rows around the origin chunk
	if store.loads != 231 {
		t.Errorf("initial load requests = %d, want 231", store.loads)
	}
	if got := c.LoadingRadius(); got != 2 {
		t.Errorf("LoadingRadius = %d, want 2", got)
	}

	// re-enabling pages again, now at the collapsed radius
	store.loads = 0
	c.SetActive(false)
	c.SetActive(true)
	if store.loads != 25 {
		t.Errorf("load requests after re-enable = %d, want 25", store.loads)
	}
}

func TestMoveSnapsCenterChunkAcrossJumps(t *testing.T) {
	store := newFakeStore(world.Point{})
	env, _ := testEnv(store)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	c.Move(6400, 0) // two chunks east in one step
	if got := c.CenterChunkX(); got != 2 {
		t.Errorf("CenterChunkX = %d, want 2", got)
	}
}

func TestMoveDelegatesToFocusTarget(t *testing.T) {
	target := &fakeFocus{has: true, name: "runner"}
	env, _ := testEnv(newFakeStore(world.Point{}))

	c, err := NewCameraFocusing(env, 0, 0, 800, 600, target)
	if err != nil {
		t.Fatal(err)
	}
	c.Move(10, 20)
	if target.pos.X != 10 || target.pos.Y != 20 {
		t.Errorf("target position = %v, want (10, 20, 0)", target.pos)
	}
	// the camera itself only moves through the follow logic
	if got := c.Position(); got.X != 0 {
		t.Errorf("camera position = %v, want unmoved", got)
	}
}

func TestSetCenterClearsFocus(t *testing.T) {
	target := &fakeFocus{has: true, name: "runner"}
	env, _ := testEnv(newFakeStore(world.Point{}))

	c, err := NewCameraFocusing(env, 0, 0, 800, 600, target)
	if err != nil {
		t.Fatal(err)
	}
	c.SetCenter(world.Point{X: 500})
	target.pos = world.Point{X: 9000}
	c.Update(0.016)

	if got := c.Position(); got.X != 500 {
		t.Errorf("position = %v, want pinned at 500", got)
	}
}

func TestInViewFrustum(t *testing.T) {
	env, cfg := testEnv(newFakeStore(world.Point{}))
	cfg.SetInt("renderResolutionWidth", 480)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		p    world.Point
		want bool
	}{
		{"center", world.Point{}, true},
		{"inside right edge", world.Point{X: 339}, true},
		{"on right edge", world.Point{X: 340}, false},
		{"far north", world.Point{Y: 2000}, false},
	}
	for _, tt := range tests {
		if got := c.InViewFrustum(tt.p); got != tt.want {
			t.Errorf("%s: InViewFrustum(%v) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestSorterSwapMovesSubscriptions(t *testing.T) {
	env, cfg := testEnv(newFakeStore(world.Point{}))

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.SorterID(); got != sorting.DepthValueSortID {
		t.Fatalf("default sorter = %d, want %d", got, sorting.DepthValueSortID)
	}
	if got := env.Bus.SubscriberCount(events.MapChanged); got != 1 {
		t.Fatalf("MapChanged subscribers = %d, want 1", got)
	}

	cfg.SetInt("depthSorter", sorting.TopologicalID)
	c.Update(0.016)
	if got := c.SorterID(); got != sorting.TopologicalID {
		t.Errorf("sorter after swap = %d, want %d", got, sorting.TopologicalID)
	}
	if got := env.Bus.SubscriberCount(events.MapChanged); got != 1 {
		t.Errorf("MapChanged subscribers after swap = %d, want 1", got)
	}
	if got := env.Bus.SubscriberCount(events.RenderStorageChanged); got != 1 {
		t.Errorf("RenderStorageChanged subscribers after swap = %d, want 1", got)
	}

	c.Dispose()
	if got := env.Bus.SubscriberCount(events.MapChanged); got != 0 {
		t.Errorf("MapChanged subscribers after dispose = %d, want 0", got)
	}
}

func TestRenderWithoutShaderDeactivates(t *testing.T) {
	env, _ := testEnv(newFakeStore(world.Point{}))

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	view := &fakeView{batch: &fakeBatch{}, backW: 800, backH: 600}
	c.Render(view)

	if c.Enabled() {
		t.Error("camera should deactivate when no shader is bound")
	}
	if view.batch.begins != 0 {
		t.Error("batch must not start without a shader")
	}
}

func TestRenderViewportAndUniforms(t *testing.T) {
	batch := &fakeBatch{}
	a := &fakeObj{pos: world.Point{}, batch: batch}
	env, _ := testEnv(newFakeStore(world.Point{}), a)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	shader := &fakeShader{}
	view := &fakeView{batch: batch, shader: shader, backW: 800, backH: 600}
	c.Render(view)

	if view.viewport != [4]int{0, 0, 800, 600} {
		t.Errorf("viewport = %v, want [0 0 800 600]", view.viewport)
	}
	if got := shader.uniforms["u_resBuffer"]; len(got) != 2 || got[0] != 800 || got[1] != 600 {
		t.Errorf("u_resBuffer = %v, want [800 600]", got)
	}
	if _, ok := shader.uniforms["u_cameraPos"]; !ok {
		t.Error("u_cameraPos not pushed")
	}
	// no light engine supplied, so no light uniforms
	if _, ok := shader.uniforms["u_sunNormal"]; ok {
		t.Error("u_sunNormal pushed without a light engine")
	}
	if batch.begins != 1 || batch.ends != 1 {
		t.Errorf("begin/end = %d/%d, want 1/1", batch.begins, batch.ends)
	}
	if a.renders != 1 {
		t.Errorf("object rendered %d times, want 1", a.renders)
	}
}

func TestMultiPassSingleBatchReplays(t *testing.T) {
	batch := &fakeBatch{}
	a := &fakeObj{pos: world.Point{}, batch: batch}
	b := &fakeObj{pos: world.Point{X: 10}, batch: batch}
	env, _ := testEnv(newFakeStore(world.Point{}), a, b)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	view := &fakeView{batch: batch, shader: &fakeShader{}, backW: 800, backH: 600}

	c.StartMultiRendering()
	c.Render(view)
	if a.renders != 1 || b.renders != 1 {
		t.Fatalf("first pass renders = %d/%d, want 1/1", a.renders, b.renders)
	}

	c.Render(view)
	if a.renders != 1 || b.renders != 1 {
		t.Errorf("second pass re-rendered objects: %d/%d, want 1/1", a.renders, b.renders)
	}
	if len(batch.setIdxLog) != 1 || batch.setIdxLog[0] != 72 {
		t.Errorf("SetIdx log = %v, want [72]", batch.setIdxLog)
	}

	c.EndMultiRendering()
	c.Render(view)
	if a.renders != 2 {
		t.Errorf("render after EndMultiRendering = %d, want 2", a.renders)
	}
}

func TestMultiPassDepthListReplays(t *testing.T) {
	batch := &fakeBatch{}
	a := &fakeObj{pos: world.Point{}, batch: batch}
	b := &fakeObj{pos: world.Point{X: 10}, batch: batch}
	env, cfg := testEnv(newFakeStore(world.Point{}), a, b)
	cfg.SetBool("singleBatchRendering", false)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	view := &fakeView{batch: batch, shader: &fakeShader{}, backW: 800, backH: 600}

	c.StartMultiRendering()
	c.Render(view)
	c.Render(view)

	// every pass re-renders through the cached depth list
	if a.renders != 2 || b.renders != 2 {
		t.Errorf("renders = %d/%d, want 2/2", a.renders, b.renders)
	}
	if len(batch.setIdxLog) != 0 {
		t.Errorf("SetIdx called in list mode: %v", batch.setIdxLog)
	}
}

func TestDebugOverlayDrawsSortOrder(t *testing.T) {
	batch := &fakeBatch{}
	a := &fakeObj{pos: world.Point{}, batch: batch}
	b := &fakeObj{pos: world.Point{X: 10, Y: 20}, batch: batch}
	env, cfg := testEnv(newFakeStore(world.Point{}), a, b)
	cfg.SetBool("debugRendering", true)

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	view := &fakeShapeView{fakeView: fakeView{batch: batch, shader: &fakeShader{}, backW: 800, backH: 600}}
	c.Render(view)

	if view.rects != 9 {
		t.Errorf("chunk grid rects = %d, want 9", view.rects)
	}
	// two visible objects make a one-segment polyline, even though the
	// single-pass path never caches a depth list
	if view.lines != 1 {
		t.Errorf("sort order lines = %d, want 1", view.lines)
	}
}

func TestCombinedMatrixShear(t *testing.T) {
	env, _ := testEnv(newFakeStore(world.Point{}))

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	c.Update(0.016)

	m := c.Combined()
	if m[geom.M11] >= 0 {
		t.Errorf("combined[M11] = %v, want negative (Y flip)", m[geom.M11])
	}
	// the shear cell carries the pre-flip Y scale times the projection factor
	want := -2 * m[geom.M11] * world.ProjectionFactorZ
	if diff := m[geom.M12] - want; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("combined[M12] = %v, want %v", m[geom.M12], want)
	}
}

func TestShakeDisplacesCamera(t *testing.T) {
	env, _ := testEnv(newFakeStore(world.Point{}))

	c, err := NewCamera(env, 0, 0, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	before := c.Position()
	c.Shake(10, 1)
	c.Update(0.016)

	if got := c.Position(); got == before {
		t.Error("shake did not displace the camera")
	}
}
