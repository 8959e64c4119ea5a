package main

import (
	"github.com/quarryengine/quarry/engine/core"
	"github.com/quarryengine/quarry/engine/gfx/spritebatch"
	"github.com/quarryengine/quarry/engine/lighting"
	"github.com/quarryengine/quarry/engine/profiler"
	"github.com/quarryengine/quarry/engine/scene"
)

// LayerWorld owns the world camera and its controller.
type LayerWorld struct {
	view     *spritebatch.View
	cam      *scene.Camera
	ctrl     *scene.Controller
	cycle    *lighting.Cycle
	wanderer *wanderer
}

func (l *LayerWorld) OnAttach(e *core.Engine) {}
func (l *LayerWorld) OnDetach(e *core.Engine) { l.cam.Dispose() }

func (l *LayerWorld) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}

	l.cycle.Advance(dt)
	l.wanderer.update(dt)
	l.ctrl.Update(e, float32(dt))
	l.cam.Update(float32(dt))
}

func (l *LayerWorld) OnRender(e *core.Engine, alpha float64) {
	scopeRender := profiler.Start("LayerWorld.OnRender")
	l.cam.Render(l.view)
	scopeRender()
}

func (l *LayerWorld) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.cam.Resize(v.W, v.H)
	case core.EventKey:
		return l.ctrl.OnEvent(ev)
	}
	return false
}
