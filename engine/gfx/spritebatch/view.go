package spritebatch

import (
	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/core"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/scene"
)

// View bundles the window, renderer, world batch and bound shader into the
// per-frame rendering surface cameras draw into. It also carries a second
// small batch with an untextured shader for debug shape overlays.
type View struct {
	win    core.Window
	r      core.Renderer
	batch  *Batch
	shader *Shader

	shapes      *Batch
	shapeShader *Shader
}

// NewView builds a view with a world batch of maxQuads and a shape overlay
// batch. The world shader starts unbound; bind one with BindShader before
// rendering.
func NewView(win core.Window, r core.Renderer, maxQuads int) (*View, error) {
	batch, err := New(r, maxQuads)
	if err != nil {
		return nil, err
	}
	shapes, err := New(r, 2048)
	if err != nil {
		return nil, err
	}
	shapeShader, err := ColorShader(r)
	if err != nil {
		return nil, err
	}
	shapes.SetShader(shapeShader)
	return &View{
		win:         win,
		r:           r,
		batch:       batch,
		shapes:      shapes,
		shapeShader: shapeShader,
	}, nil
}

// BindShader sets the world shader the cameras see.
func (v *View) BindShader(s *Shader) { v.shader = s }

// --- scene.View ---

func (v *View) Batch() scene.Batch { return v.batch }

func (v *View) Shader() scene.Shader {
	if v.shader == nil {
		return nil
	}
	return v.shader
}

func (v *View) SetViewport(x, y, w, h int) { v.r.Viewport(x, y, w, h) }

func (v *View) BackBufferSize() (int, int) { return v.win.FramebufferSize() }

// --- scene.ShapeDrawer ---

func (v *View) SetShapeProjection(m geom.Mat4) { v.shapes.SetProjection(m) }

func (v *View) Line(x1, y1, x2, y2 float32, col colors.Color) {
	v.shapes.DrawLine(x1, y1, x2, y2, 2, col)
}

func (v *View) RectOutline(x, y, w, h float32, col colors.Color) {
	v.shapes.DrawLine(x, y, x+w, y, 2, col)
	v.shapes.DrawLine(x+w, y, x+w, y+h, 2, col)
	v.shapes.DrawLine(x+w, y+h, x, y+h, 2, col)
	v.shapes.DrawLine(x, y+h, x, y, 2, col)
}

func (v *View) FlushShapes() {
	v.shapes.End()
}
