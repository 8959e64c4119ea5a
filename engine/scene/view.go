package scene

import (
	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/world"
)

// Shader is the uniform surface the camera pushes per-frame values into.
type Shader interface {
	SetUniformf(name string, values ...float32)
}

// Batch is the draw-call recording boundary. Idx/SetIdx expose the write
// index into the batch's vertex data so a multi-pass render can rewind and
// replay the same geometry without resubmitting objects.
type Batch interface {
	SetProjection(m geom.Mat4)
	SetShader(s Shader)
	Begin()
	End()
	Idx() int
	SetIdx(i int)
}

// View bundles what a camera needs from the rendering side each frame. A
// nil Shader means nothing is bound; the camera treats that as an error.
type View interface {
	Batch() Batch
	Shader() Shader
	// SetViewport sets the pixel viewport, origin bottom-left (GL
	// convention).
	SetViewport(x, y, w, h int)
	BackBufferSize() (w, h int)
}

// ShapeDrawer is an optional capability of a View used for debug overlays.
type ShapeDrawer interface {
	SetShapeProjection(m geom.Mat4)
	Line(x1, y1, x2, y2 float32, col colors.Color)
	RectOutline(x, y, w, h float32, col colors.Color)
	FlushShapes()
}

// Focusable is a followable object: an entity handle with a position
// capability check. The camera keeps at most one and clears it on SetCenter.
type Focusable interface {
	HasPosition() bool
	Position() world.Point
	// DimensionZ is the object's vertical extent, used to center the camera
	// on the object's middle rather than its feet.
	DimensionZ() float32
	// Name is used for diagnostics only.
	Name() string
}

// MovableFocus is an optional Focusable capability: targets that can be
// nudged directly when the camera itself is asked to move while following.
type MovableFocus interface {
	Focusable
	Translate(x, y, z float32)
}
