package scene

import (
	"github.com/quarryengine/quarry/engine/config"
	"github.com/quarryengine/quarry/engine/core"
)

// Controller: WASD pan, scroll zoom, Space shake, 0/1/2 switch the depth
// sort strategy at runtime.
type Controller struct {
	MoveSpeed float32 // game units per second
	ZoomSpeed float32
	Camera    *Camera
	cvars     *config.CVars
}

func NewController(cam *Camera, cvars *config.CVars) *Controller {
	return &Controller{
		MoveSpeed: 600,
		ZoomSpeed: 1.2,
		Camera:    cam,
		cvars:     cvars,
	}
}

func (cc *Controller) Update(e *core.Engine, dt float32) {
	in := e.Input
	speed := cc.MoveSpeed * dt

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}

	if _, y := in.ConsumeScroll(); y != 0 {
		z := cc.Camera.Zoom()
		if y > 0 {
			z *= cc.ZoomSpeed
		} else {
			z /= cc.ZoomSpeed
		}
		cc.Camera.SetZoom(z)
	}
}

// OnEvent handles the one-shot keys; held-key movement lives in Update.
func (cc *Controller) OnEvent(ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch k.Key {
	case core.KeySpace:
		cc.Camera.Shake(200, 0.5)
	case core.Key0:
		cc.cvars.SetInt("depthSorter", 0)
	case core.Key1:
		cc.cvars.SetInt("depthSorter", 1)
	case core.Key2:
		cc.cvars.SetInt("depthSorter", 2)
	default:
		return false
	}
	return true
}
