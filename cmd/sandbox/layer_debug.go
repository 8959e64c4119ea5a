package main

import (
	"fmt"

	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/core"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/gfx/spritebatch"
	"github.com/quarryengine/quarry/engine/profiler"
	"github.com/quarryengine/quarry/engine/scene"
	"github.com/quarryengine/quarry/engine/scratch"
	"github.com/quarryengine/quarry/engine/text"
)

// LayerDebug draws a text HUD with camera and batch stats in screen space.
type LayerDebug struct {
	batch         *spritebatch.Batch
	shader        *spritebatch.Shader
	font          *text.Font
	cam           *scene.Camera
	world         *spritebatch.Batch // stats source
	winW, winH    int
	frameDuration float32
	tick          int
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.winW, l.winH = e.Window.FramebufferSize()
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	scopeRender := profiler.Start("LayerDebug.OnRender")

	stats := l.world.Stats()

	scratch.Reset()
	scratch.F().
		S("frame ").I(l.tick).
		S("  ").F64(float64(l.frameDuration), 2).S(" ms\n").
		S("chunk ").Coord(l.cam.CenterChunkX(), l.cam.CenterChunkY()).
		S("  zoom ").F64(float64(l.cam.Zoom()), 2).
		S("  sorter ").I(l.cam.SorterID()).C('\n').
		S("quads ").I(stats.QuadCount).
		S("  draws ").I(stats.DrawCalls).
		S("  mem ").F64(float64(profiler.MemoryUsage())/(1<<20), 1).S(" MB")
	hud := scratch.StringView()

	e.Renderer.Viewport(0, 0, l.winW, l.winH)
	l.batch.SetProjection(geom.Ortho(0, float32(l.winW), float32(l.winH), 0, -1, 1))
	l.batch.SetShader(l.shader)
	l.batch.Begin()
	text.DrawText(l.batch, l.font, 16, 16, hud, colors.Yellow)
	l.batch.End()

	scopeRender()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeySpace && (v.Mods&core.ModCtrl) != 0 {
			if path, err := profiler.OpenProfilerGraph(); err == nil {
				fmt.Println("speedscope dump:", path)
			} else {
				fmt.Println("profiler dump error:", err)
			}
			return true
		}
	case core.EventResize:
		l.winW, l.winH = v.W, v.H
	}
	return false
}
