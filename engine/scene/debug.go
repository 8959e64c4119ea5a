package scene

import (
	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/world"
)

// drawDebug overlays the chunk grid around the center chunk and the current
// draw order as a polyline. Views without shape support are skipped.
func (c *Camera) drawDebug(v View) {
	sd, ok := v.(ShapeDrawer)
	if !ok {
		return
	}
	sd.SetShapeProjection(c.combined)

	// 3x3 chunk grid around the center chunk, in view space
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cx := c.centerChunkX + dx
			cy := c.centerChunkY + dy
			x0 := float32(cx) * world.ChunkViewWidth
			y0 := float32(-cy) * world.ChunkViewDepth
			sd.RectOutline(x0, y0-world.ChunkViewDepth, world.ChunkViewWidth, world.ChunkViewDepth, colors.Gray)
		}
	}

	// draw order polyline, front of the list toward red. The list is
	// refreshed here since the single-pass render path never fills it.
	c.depthList = c.sorter.CreateDepthList(c.depthList[:0])
	if n := len(c.depthList); n > 1 {
		col := colors.Color{0, 1, 1, 1}
		step := 1 / float32(n)
		prev := c.depthList[0].Position()
		for _, o := range c.depthList[1:] {
			cur := o.Position()
			sd.Line(prev.ViewSpcX(), prev.ViewSpcY(), cur.ViewSpcX(), cur.ViewSpcY(), col)
			col[0] += step
			col[1] -= step
			prev = cur
		}
	}

	sd.FlushShapes()
}
