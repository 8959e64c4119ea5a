package main

import (
	"log"
	"time"

	"github.com/quarryengine/quarry/engine/assets"
	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/config"
	"github.com/quarryengine/quarry/engine/core"
	"github.com/quarryengine/quarry/engine/events"
	glbackend "github.com/quarryengine/quarry/engine/gfx/gl"
	"github.com/quarryengine/quarry/engine/gfx/spritebatch"
	"github.com/quarryengine/quarry/engine/lighting"
	"github.com/quarryengine/quarry/engine/platform"
	"github.com/quarryengine/quarry/engine/profiler"
	"github.com/quarryengine/quarry/engine/scene"
	"github.com/quarryengine/quarry/engine/scratch"
	"github.com/quarryengine/quarry/engine/text"
)

type App struct {
	cvars     *config.CVars
	watcher   *config.Watcher
	lastFrame time.Time
	tick      int

	view       *spritebatch.View
	world      *demoWorld
	layer      *LayerWorld
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples
	scratch.Init(4 << 10)

	view, err := spritebatch.NewView(e.Window, e.Renderer, 10000)
	if err != nil {
		panic(err)
	}
	a.view = view

	shader, err := loadWorldShader(e.Renderer)
	if err != nil {
		panic(err)
	}
	view.BindShader(shader)

	// Load default font
	font, err := text.LoadTTF(e.Renderer, "RobotoMono.ttf", 32)
	if err != nil {
		panic(err)
	}

	bus := events.NewBus()
	worldBatch, ok := view.Batch().(*spritebatch.Batch)
	if !ok {
		panic("sandbox: unexpected batch type")
	}
	a.world = newDemoWorld(bus, worldBatch)

	cycle := lighting.NewCycle()

	w, h := e.Window.FramebufferSize()
	env := scene.Env{
		Store:   a.world,
		Config:  a.cvars,
		Lights:  cycle,
		Bus:     bus,
		Storage: a.world,
	}

	wander := newWanderer(worldBatch, a.world.Center(), loadSpriteTexture(e.Renderer, "wanderer.png"))
	a.world.AddObject(wander)

	cam, err := scene.NewCameraFocusing(env, 0, 0, w, h, wander)
	if err != nil {
		log.Fatal(err)
	}
	cam.SetFullWindow(true)

	a.layer = &LayerWorld{
		view:     view,
		cam:      cam,
		ctrl:     scene.NewController(cam, a.cvars),
		cycle:    cycle,
		wanderer: wander,
	}
	e.PushLayer(a.layer)

	hudBatch, err := spritebatch.New(e.Renderer, 4096)
	if err != nil {
		panic(err)
	}
	hudShader, err := spritebatch.ColorShader(e.Renderer)
	if err != nil {
		panic(err)
	}
	a.debugLayer = &LayerDebug{
		batch:  hudBatch,
		shader: hudShader,
		font:   font,
		cam:    cam,
		world:  worldBatch,
	}
	e.PushLayer(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	// Calculate frame duration
	now := time.Now()
	if a.debugLayer != nil && !a.lastFrame.IsZero() {
		a.debugLayer.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.debugLayer.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

// loadWorldShader prefers GLSL files under assets/shaders so shading can be
// tweaked without recompiling; the embedded default covers a bare checkout.
func loadWorldShader(r core.Renderer) (*spritebatch.Shader, error) {
	vs, errV := assets.LoadShader("world.vert")
	fs, errF := assets.LoadShader("world.frag")
	if errV != nil || errF != nil {
		return spritebatch.DefaultShader(r)
	}
	return spritebatch.NewShader(r, vs, fs)
}

// loadSpriteTexture returns nil when the file is missing; callers fall back
// to untextured quads.
func loadSpriteTexture(r core.Renderer, name string) core.Texture {
	w, h, pix, err := assets.LoadPNG(name)
	if err != nil {
		return nil
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: w, Height: h,
		Format:    core.TextureRGBA8,
		Pixels:    pix,
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		log.Printf("sandbox: texture %s: %v", name, err)
		return nil
	}
	return tex
}

func main() {
	cvars, err := config.Load("cvars.yaml")
	if err != nil {
		log.Fatal(err)
	}
	watcher, err := config.Watch(cvars, "cvars.yaml")
	if err != nil {
		log.Printf("cvars: hot reload disabled: %v", err)
	}

	cfg := core.Config{
		Title:      "Quarry Sandbox",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
	}
	app := &App{cvars: cvars, watcher: watcher}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
