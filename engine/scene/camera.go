package scene

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/quarryengine/quarry/engine/config"
	"github.com/quarryengine/quarry/engine/events"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/lighting"
	"github.com/quarryengine/quarry/engine/sorting"
	"github.com/quarryengine/quarry/engine/world"
)

// Projection planes and paging defaults.
const (
	nearPlane = 1
	farPlane  = 2200

	// initialLoadingRadius is the chunk radius requested on the first
	// paging pass; it collapses to minLoadingRadius afterwards and never
	// grows back.
	initialLoadingRadius = 10
	minLoadingRadius     = 2

	minZoom = 0.05
)

// Env are the collaborators a camera reads from. Store, Config, Bus and
// Storage are required; Lights may be nil (lighting uniforms are skipped).
type Env struct {
	Store   world.ChunkStore
	Config  config.Provider
	Lights  lighting.Engine
	Bus     *events.Bus
	Storage sorting.Storage
}

func (e Env) validate() error {
	if e.Store == nil {
		return errors.New("camera: nil chunk store")
	}
	if e.Config == nil {
		return errors.New("camera: nil config provider")
	}
	if e.Bus == nil {
		return errors.New("camera: nil event bus")
	}
	if e.Storage == nil {
		return errors.New("camera: nil render storage")
	}
	return nil
}

// Camera is a virtual viewport over the chunked world: it owns the view and
// projection transforms, pages chunks around its focus point, culls against
// its frustum and orchestrates depth-sorted rendering. One camera owns its
// mutable state exclusively; several cameras may share a store and bus.
type Camera struct {
	env Env

	// position is in view space, Y-up.
	position geom.Vec2

	projection geom.Mat4
	viewMat    geom.Mat4
	combined   geom.Mat4

	screenWidth, screenHeight int
	screenPosX, screenPosY    int
	windowW, windowH          int
	fullWindow                bool

	zoom float32
	// widthView is the internal render resolution width; the visible world
	// width is widthView/zoom.
	widthView       int
	widthAfterProj  int
	heightAfterProj int

	focus Focusable

	shakeAmplitude float32
	shakeTime      float32

	centerChunkX, centerChunkY int
	lastCenterX, lastCenterY   int
	loadingRadius              int

	sorter    sorting.Sorter
	sorterID  int
	depthList []sorting.Object

	multiRendering   bool
	multiPassLastIdx int

	active bool
	id     int
}

func newCamera(env Env, x, y, width, height int) (*Camera, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	c := &Camera{
		env:           env,
		screenPosX:    x,
		screenPosY:    y,
		screenWidth:   width,
		screenHeight:  height,
		windowW:       width,
		windowH:       height,
		widthView:     env.Config.Int("renderResolutionWidth"),
		loadingRadius: initialLoadingRadius,
		active:        true,
	}
	c.SetZoom(1)
	c.selectSorter()
	return c, nil
}

// initFocus derives the center chunk from the camera position, absolutely,
// and pages chunks in if chunking is enabled.
func (c *Camera) initFocus() {
	c.centerChunkX = int(math.Floor(float64(c.position.X) / world.ChunkViewWidth))
	c.centerChunkY = int(math.Floor(float64(-c.position.Y) / world.ChunkViewDepth))
	if c.env.Config.Bool("mapUseChunks") {
		c.checkNeededChunks()
	}
}

// NewCamera creates a camera over the given screen rectangle, pointed at the
// middle of the map. x/y are the viewport position in the window, origin top
// left.
func NewCamera(env Env, x, y, width, height int) (*Camera, error) {
	c, err := newCamera(env, x, y, width, height)
	if err != nil {
		return nil, err
	}
	center := env.Store.Center()
	c.position = geom.Vec2{X: center.ViewSpcX(), Y: center.ViewSpcY()}
	c.initFocus()
	return c, nil
}

// NewFullWindowCamera creates a camera covering the whole window.
func NewFullWindowCamera(env Env, width, height int) (*Camera, error) {
	c, err := NewCamera(env, 0, 0, width, height)
	if err != nil {
		return nil, err
	}
	c.fullWindow = true
	return c, nil
}

// NewCameraAt creates a camera focusing a specific point.
func NewCameraAt(env Env, x, y, width, height int, center world.Point) (*Camera, error) {
	c, err := newCamera(env, x, y, width, height)
	if err != nil {
		return nil, err
	}
	c.position = geom.Vec2{X: center.ViewSpcX(), Y: center.ViewSpcY()}
	c.initFocus()
	return c, nil
}

// NewCameraFocusing creates a camera locked to a target. The target must be
// non-nil and already placed in the world; a camera without a valid anchor
// cannot compute its initial position.
func NewCameraFocusing(env Env, x, y, width, height int, target Focusable) (*Camera, error) {
	if target == nil {
		return nil, errors.New("camera: nil focus target")
	}
	if !target.HasPosition() {
		return nil, fmt.Errorf("camera: focus target %q has no position", target.Name())
	}
	c, err := newCamera(env, x, y, width, height)
	if err != nil {
		return nil, err
	}
	log.Printf("camera: focusing %q", target.Name())
	c.focus = target
	p := target.Position()
	c.position = geom.Vec2{
		X: p.ViewSpcX(),
		// have the middle of the object in the center
		Y: p.ViewSpcY() + target.DimensionZ()*world.ProjectionFactorZ/2,
	}
	c.initFocus()
	return c, nil
}

// Update advances the camera one frame: focus follow, screen shake, matrix
// rebuild, chunk paging and sorter reselection. dt is in seconds. Disabled
// cameras do nothing and keep stale matrices, which Render likewise skips.
func (c *Camera) Update(dt float32) {
	if !c.active {
		return
	}

	if c.focus != nil && c.focus.HasPosition() {
		p := c.focus.Position()
		target := geom.Vec2{
			X: p.ViewSpcX(),
			Y: p.ViewSpcY() + c.focus.DimensionZ()*world.ProjectionFactorZ/2,
		}

		// only follow when outside the leap radius; the lag never exceeds it
		leap := float32(c.env.Config.Int("cameraLeapRadius"))
		if c.position.Dst(target) > leap {
			diff := c.position.Sub(target).Nor().Scl(leap)
			c.position = target.Add(diff)
		}
	}

	if c.shakeTime > 0 {
		c.shakeTime -= dt
		c.position.X += shakeOffset(c.shakeAmplitude, dt)
		c.position.Y += shakeOffset(c.shakeAmplitude, dt)
	}

	wv := float32(c.widthAfterProj)
	hv := float32(c.heightAfterProj)
	c.projection = geom.Ortho(wv/2, -wv/2, hv/2, -hv/2, nearPlane, farPlane)

	// eye sits at z=1 looking toward z=-1; up is flipped to match the
	// screen convention
	c.viewMat = geom.LookAt(
		geom.Vec3{X: c.position.X, Y: c.position.Y, Z: 1},
		geom.Vec3{X: c.position.X, Y: c.position.Y, Z: -1},
		geom.Vec3{X: 0, Y: -1, Z: 0},
	)
	c.combined = c.projection.Mul(c.viewMat)

	// viewport shear: fake the 2.5D perspective on the orthographic base.
	// Shaders depend on exactly these cells.
	c.combined[geom.M12] = c.combined[geom.M11] * world.ProjectionFactorZ
	c.combined[geom.M11] *= -0.5
	c.combined[geom.M23] *= -1 // reverse z for the near/far planes

	c.updateCenter()
	c.selectSorter()
}

// shakeOffset returns a pseudo-random perturbation bounded by amplitude*dt
// mod amplitude, centered around zero.
func shakeOffset(amplitude, dt float32) float32 {
	return float32(math.Mod(rand.Float64()*float64(amplitude)*float64(dt), float64(amplitude))) - amplitude*0.5
}

// selectSorter swaps the active sort strategy when the configured id
// changed. The old strategy is unsubscribed before the new one subscribes,
// so notifications only ever reach the active strategy.
func (c *Camera) selectSorter() {
	id := c.env.Config.Int("depthSorter")
	if id == c.sorterID && c.sorter != nil {
		return
	}
	if c.sorter != nil {
		c.env.Bus.Unsubscribe(c.sorter, events.MapChanged, events.RenderStorageChanged)
	}
	c.sorter = sorting.New(id, c, c.env.Storage)
	c.env.Bus.Subscribe(c.sorter, events.MapChanged, events.RenderStorageChanged)
	c.sorterID = id
}

// UpdateCenter moves the center chunk with the visible borders and pages
// chunks when it changes. X moves incrementally (±1) off the border checks;
// a safety check snaps it to the absolute value when the camera jumped more
// than one chunk (teleport, extreme shake). Y is always recomputed
// absolutely.
func (c *Camera) UpdateCenter() { c.updateCenter() }

func (c *Camera) updateCenter() {
	oldX := c.centerChunkX

	if c.VisibleLeftBorder() < (c.centerChunkX-1)*world.ChunkBlocksX {
		c.centerChunkX--
	}
	if c.VisibleRightBorder() >= (c.centerChunkX+2)*world.ChunkBlocksX {
		c.centerChunkX++
	}

	// relative movement breaks across discontinuities; fall back to the
	// absolute chunk of the focus point
	if dx := c.Center().ChunkX() - oldX; dx*dx > 1 {
		c.centerChunkX = c.Center().ChunkX()
	}

	c.centerChunkY = int(math.Floor(float64(-c.position.Y) / world.ChunkViewDepth))

	if c.lastCenterX != c.centerChunkX || c.lastCenterY != c.centerChunkY {
		c.lastCenterX = c.centerChunkX
		c.lastCenterY = c.centerChunkY
		c.checkNeededChunks()
	}
}

// checkNeededChunks requests loads for every missing chunk in a rectangle
// around the center. The body only runs when centered at the origin chunk or
// when dynamic chunk switching is enabled; that gate is intentional, not a
// bug. After the first gated pass the loading radius collapses to the
// minimum for good.
func (c *Camera) checkNeededChunks() {
	if (c.centerChunkX == 0 && c.centerChunkY == 0) || c.env.Config.Bool("mapChunkSwitch") {
		for x := -c.loadingRadius; x <= c.loadingRadius; x++ {
			lRad := c.loadingRadius / 2
			if lRad < minLoadingRadius {
				lRad = minLoadingRadius
			}
			for y := -lRad; y <= lRad; y++ {
				if c.env.Store.Chunk(c.centerChunkX+x, c.centerChunkY+y) == nil {
					c.env.Store.LoadChunk(c.centerChunkX+x, c.centerChunkY+y)
				}
			}
		}
		if c.loadingRadius > minLoadingRadius {
			c.loadingRadius = minLoadingRadius
		}
	}
}

// Render draws the viewport. No-op while disabled. Fails fast when the view
// has no shader bound: the error is logged and the camera disables itself
// until re-enabled explicitly.
func (c *Camera) Render(v View) {
	if !c.active || c.env.Store == nil {
		return
	}

	shader := v.Shader()
	if shader == nil {
		log.Printf("camera %d: no shader bound, deactivating", c.id)
		c.SetActive(false)
		return
	}

	batch := v.Batch()
	batch.SetProjection(c.combined)
	batch.SetShader(shader)

	// viewport in screen pixels, converting from Y-down window coordinates
	bw, bh := v.BackBufferSize()
	v.SetViewport(c.screenPosX, bh-c.screenHeight-c.screenPosY, c.screenWidth, c.screenHeight)

	batch.Begin()
	c.pushUniforms(shader, bw, bh)

	single := c.env.Config.Bool("singleBatchRendering")
	switch {
	case !c.multiRendering || (single && c.multiPassLastIdx == 0):
		c.sorter.RenderSorted()
		c.multiPassLastIdx = batch.Idx()
	case single:
		// replay the recorded batch contents without resorting
		batch.SetIdx(c.multiPassLastIdx)
	default:
		if c.multiPassLastIdx == 0 {
			c.depthList = c.sorter.CreateDepthList(c.depthList[:0])
		}
		for _, o := range c.depthList {
			o.Render()
		}
		c.multiPassLastIdx = batch.Idx()
	}

	batch.End()

	if c.env.Config.Bool("debugRendering") {
		c.drawDebug(v)
	}
}

func (c *Camera) pushUniforms(shader Shader, backW, backH int) {
	cfg := c.env.Config
	center := c.Center()

	shader.SetUniformf("u_cameraPos", center.X, center.Y, center.Z)
	shader.SetUniformf("u_fogColor", cfg.Float("fogR"), cfg.Float("fogG"), cfg.Float("fogB"))
	shader.SetUniformf("u_resBuffer", float32(backW), float32(backH))

	autoShade := float32(0)
	if cfg.Bool("enableAutoShade") {
		autoShade = 1
	}
	shader.SetUniformf("u_autoShade", autoShade)
	shader.SetUniformf("u_ambientOcclusion", cfg.Float("ambientOcclusion"))

	if c.focus != nil && c.focus.HasPosition() {
		p := c.focus.Position()
		shader.SetUniformf("u_playerPos", p.X, p.Y, p.Z)
		shader.SetUniformf("u_localLightPos", p.X, p.Y, p.Z)
	}

	if cfg.Bool("enableLightEngine") && c.env.Lights != nil {
		sun := c.env.Lights.Sun(center)
		shader.SetUniformf("u_sunNormal", sun.Normal.X, sun.Normal.Y, sun.Normal.Z)
		shader.SetUniformf("u_sunColor", sun.Color[0], sun.Color[1], sun.Color[2], sun.Color[3])

		if moon, ok := c.env.Lights.Moon(center); ok {
			amb := c.env.Lights.Ambient(center)
			shader.SetUniformf("u_moonNormal", moon.Normal.X, moon.Normal.Y, moon.Normal.Z)
			shader.SetUniformf("u_moonColor", moon.Color[0], moon.Color[1], moon.Color[2], moon.Color[3])
			shader.SetUniformf("u_ambientColor", amb[0], amb[1], amb[2], amb[3])
		} else {
			shader.SetUniformf("u_moonNormal", 0, 0, 0)
			shader.SetUniformf("u_moonColor", 0, 0, 0, 0)
			shader.SetUniformf("u_ambientColor", 0, 0, 0, 0)
		}
	}
}

// StartMultiRendering enables multi-pass mode: subsequent Render calls reuse
// the first pass's draw order instead of resorting.
func (c *Camera) StartMultiRendering() {
	c.multiRendering = true
	c.multiPassLastIdx = 0
}

// EndMultiRendering returns to one sort per Render call.
func (c *Camera) EndMultiRendering() {
	c.multiRendering = false
}

func (c *Camera) IsMultiRendering() bool { return c.multiRendering }

// InViewFrustum reports whether a position's projected sprite footprint
// intersects the viewport. The horizontal test compares squared distances to
// avoid the square root; the boundary is exclusive.
func (c *Camera) InViewFrustum(pos world.Point) bool {
	vspY := pos.ViewSpcY()
	halfH := float32(c.heightAfterProj >> 1)
	if !(c.position.Y+halfH > vspY-world.CellViewHeight*2 &&
		vspY+world.CellViewHeight+world.CellViewDepth > c.position.Y-halfH) {
		return false
	}
	dist := int(pos.ViewSpcX() - c.position.X)
	half := (c.widthAfterProj >> 1) + world.CellViewWidth2
	return dist*dist < half*half
}

// VisibleLeftBorderVS returns the left border of the visible area in raw
// view-space units, with a one-cell safety margin.
func (c *Camera) VisibleLeftBorderVS() float32 {
	return c.position.X - float32(c.widthAfterProj)*0.5 - world.CellViewWidth2
}

// VisibleLeftBorder returns the left border in grid units.
func (c *Camera) VisibleLeftBorder() int {
	return int((c.position.X-float32(c.widthAfterProj)*0.5)/world.CellViewWidth - 1)
}

// VisibleRightBorder returns the right border in grid units.
func (c *Camera) VisibleRightBorder() int {
	return int((c.position.X+float32(c.widthAfterProj)*0.5)/world.CellViewWidth + 1)
}

// VisibleRightBorderVS returns the right border in raw view-space units.
func (c *Camera) VisibleRightBorderVS() float32 {
	return c.position.X + float32(c.widthAfterProj)*0.5 + world.CellViewWidth2
}

// VisibleBackBorder returns the top border of the covered ground, in grid
// units.
func (c *Camera) VisibleBackBorder() int {
	return int((c.position.Y + float32(c.heightAfterProj)*0.5) / -world.CellViewDepth2)
}

// VisibleFrontBorderLow returns the bottom border at the lowest cells, in
// grid units.
func (c *Camera) VisibleFrontBorderLow() int {
	return int((c.position.Y - float32(c.heightAfterProj)*0.5) / -world.CellViewDepth2)
}

// VisibleFrontBorderHigh returns the bottom border at the frontmost cells
// that could still be visible: the low border plus the world height in Z
// expressed as a Y distance.
func (c *Camera) VisibleFrontBorderHigh() int {
	return int((c.position.Y-float32(c.heightAfterProj)*0.5)/-world.CellViewDepth2 +
		world.ChunkBlocksZ*world.CellViewHeight/world.CellViewDepth2)
}

// Center returns the camera's focus point in game space. Approximated: the
// stored position is in view space and the back-transformation is a line, so
// Z is pinned to the world's half height.
func (c *Camera) Center() world.Point {
	return world.Point{
		X: c.position.X,
		Y: -(c.position.Y - world.CellViewHeight2*world.ChunkBlocksZ) / world.ProjectionFactorY,
		Z: world.GameEdgeLength2 * world.ChunkBlocksZ,
	}
}

// SetCenter pins the camera to a point in game space. Any focus lock is
// removed; Z is ignored by the paging math.
func (c *Camera) SetCenter(p world.Point) {
	c.focus = nil
	c.position = geom.Vec2{X: p.ViewSpcX(), Y: p.ViewSpcY()}
}

// SetFocusTarget locks the camera to a target, replacing any previous one.
// Nil targets are ignored; SetCenter is the explicit way to unlock.
func (c *Camera) SetFocusTarget(target Focusable) {
	if target == nil || target == c.focus {
		return
	}
	c.focus = target
	if target.HasPosition() {
		p := target.Position()
		c.position = geom.Vec2{
			X: p.ViewSpcX(),
			Y: p.ViewSpcY() + target.DimensionZ()*world.ProjectionFactorZ/2,
		}
	}
}

// Move shifts the camera by (x, y) game-space units. While following, the
// nudge goes to the target if it supports it, keeping camera and target
// locked together.
func (c *Camera) Move(x, y float32) {
	if c.focus != nil && c.focus.HasPosition() {
		if m, ok := c.focus.(MovableFocus); ok {
			m.Translate(x, y, 0)
		}
	} else {
		c.position.X += x
		c.position.Y -= y * world.ProjectionFactorY // game to view space
	}
	c.updateCenter()
}

// Shake starts a screen shake with the given amplitude for time seconds.
func (c *Camera) Shake(amplitude, time float32) {
	c.shakeAmplitude = amplitude
	c.shakeTime = time
}

// SetZoom sets the zoom factor (1 is default, higher is closer) and
// re-derives the projected viewport size. Non-positive zoom is a
// precondition violation and gets clamped.
func (c *Camera) SetZoom(zoom float32) {
	if zoom <= 0 {
		zoom = minZoom
	}
	c.zoom = zoom
	c.widthAfterProj = int(float32(c.widthView) / zoom)
	c.heightAfterProj = int(float32(c.screenHeight) / (c.ProjScaling() * zoom))
}

func (c *Camera) Zoom() float32 { return c.zoom }

// SetInternalRenderResolution sets the internal render width and re-derives
// the projected viewport size.
func (c *Camera) SetInternalRenderResolution(width int) {
	c.widthView = width
	c.SetZoom(c.zoom)
}

// ProjScaling is the factor between output size and internal render
// resolution; displayed twice as big as rendered gives 2.
func (c *Camera) ProjScaling() float32 {
	return float32(c.screenWidth) / float32(c.widthView)
}

// WorldWidthViewport is the number of world pixels visible in X after zoom.
func (c *Camera) WorldWidthViewport() int { return c.widthAfterProj }

// WorldHeightViewport is the number of world pixels visible in Y after zoom.
func (c *Camera) WorldHeightViewport() int { return c.heightAfterProj }

func (c *Camera) ScreenPosX() int      { return c.screenPosX }
func (c *Camera) ScreenPosY() int      { return c.screenPosY }
func (c *Camera) WidthScreenSpc() int  { return c.screenWidth }
func (c *Camera) HeightScreenSpc() int { return c.screenHeight }

// Position returns the camera position in view space.
func (c *Camera) Position() geom.Vec2 { return c.position }

// Combined returns the projection*view matrix with the viewport shear
// applied; stale until the first Update.
func (c *Camera) Combined() geom.Mat4 { return c.combined }

// Projection returns the bare orthographic projection matrix.
func (c *Camera) Projection() geom.Mat4 { return c.projection }

func (c *Camera) IsFullWindow() bool { return c.fullWindow }

// SetFullWindow makes the camera output cover the whole window.
func (c *Camera) SetFullWindow(full bool) {
	c.fullWindow = full
	if full {
		c.screenWidth = c.windowW
		c.screenHeight = c.windowH
		c.screenPosX = 0
		c.screenPosY = 0
		c.SetZoom(c.zoom)
	}
}

// Resize follows window size changes; full-window cameras track them.
func (c *Camera) Resize(width, height int) {
	c.windowW = width
	c.windowH = height
	if c.fullWindow {
		c.screenWidth = width
		c.screenHeight = height
		c.screenPosX = 0
		c.screenPosY = 0
		c.SetZoom(c.zoom)
	}
}

// SetScreenSize sets the camera's output size in pixels.
func (c *Camera) SetScreenSize(width, height int) {
	if width < c.windowW || height < c.windowH {
		c.fullWindow = false
	}
	c.screenWidth = width
	c.screenHeight = height
	c.SetZoom(c.zoom)
}

// SetActive enables or disables the camera. Re-enabling re-checks needed
// chunks so paging catches up with anything missed while off.
func (c *Camera) SetActive(active bool) {
	if !c.active && active && c.env.Config.Bool("mapUseChunks") {
		c.checkNeededChunks()
	}
	c.active = active
}

func (c *Camera) Enabled() bool { return c.active }

func (c *Camera) CenterChunkX() int { return c.centerChunkX }
func (c *Camera) CenterChunkY() int { return c.centerChunkY }

// LoadingRadius reports the current chunk paging radius.
func (c *Camera) LoadingRadius() int { return c.loadingRadius }

func (c *Camera) SetID(id int) { c.id = id }
func (c *Camera) ID() int      { return c.id }

// SorterID reports the active sort strategy id.
func (c *Camera) SorterID() int { return c.sorterID }

// Dispose unsubscribes the active sort strategy so no dangling listeners
// remain on the bus.
func (c *Camera) Dispose() {
	if c.sorter != nil {
		c.env.Bus.Unsubscribe(c.sorter, events.MapChanged, events.RenderStorageChanged)
		c.sorter = nil
	}
}
