package spritebatch

import (
	"log"
	"math"
	"strconv"

	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/core"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/scene"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6
const floatsPerQuad = vStride * vertsPerQuad

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics captures the counts generated during a batch frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// Batch accumulates quads into a fixed vertex buffer and draws them in one
// call per flush. The write index survives End so a multi-pass render can
// rewind with SetIdx and replay the recorded geometry without resubmitting
// objects; the rewind is only valid while nothing forced an intermediate
// flush.
type Batch struct {
	r      core.Renderer
	pipe   core.Pipeline
	shader *Shader
	white  core.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]core.Texture
	texCnt int

	verts    []float32 // fixed backing array, written through idx
	inds     []uint32  // precomputed quad pattern
	idx      int       // float write index
	maxQuads int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	projection geom.Mat4
	stats      Statistics
}

// New creates a batch with its own mesh. The shader pipeline comes from the
// bound Shader, not from the batch.
func New(r core.Renderer, maxQuads int) (*Batch, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}

	// build 1x1 white texture
	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}

	b := &Batch{
		r: r, white: white, maxQuads: maxQuads,
		verts:      make([]float32, maxQuads*floatsPerQuad),
		inds:       make([]uint32, 0, maxQuads*indsPerQuad),
		projection: geom.Identity(),
	}

	// static index pattern, reused as a prefix each flush
	for q := 0; q < maxQuads; q++ {
		v := uint32(q * vertsPerQuad)
		b.inds = append(b.inds, v+0, v+2, v+1, v+1, v+2, v+3)
	}

	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: b.verts,
		Indices:  b.inds,
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}
	b.mesh = mesh

	b.samplers = make(map[string]core.Texture, maxTexSlots)
	b.uniforms = make(map[string]any, 16)
	for i := 0; i < maxTexSlots; i++ {
		b.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	b.resetTexSlots()

	return b, nil
}

// SetProjection sets the view-projection matrix sent as uVP on each flush.
func (b *Batch) SetProjection(m geom.Mat4) { b.projection = m }

// SetShader binds the shader whose pipeline and staged uniforms the next
// flush uses. Foreign shader implementations are ignored with a log line.
func (b *Batch) SetShader(s scene.Shader) {
	sh, ok := s.(*Shader)
	if !ok {
		log.Printf("spritebatch: unsupported shader %T", s)
		return
	}
	b.shader = sh
	b.pipe = sh.pipe
}

// Begin starts a frame of recording. The previous frame's vertex data is
// still in the backing array until overwritten.
func (b *Batch) Begin() {
	b.stats = Statistics{}
}

// End flushes everything recorded since the last flush. The data stays in
// the backing array so SetIdx can re-expose it.
func (b *Batch) End() { b.flush() }

// Idx returns the current float write index.
func (b *Batch) Idx() int { return b.idx }

// SetIdx rewinds (or advances) the write index into previously recorded
// data.
func (b *Batch) SetIdx(i int) {
	if i < 0 || i > len(b.verts) {
		return
	}
	b.idx = i
}

// Stats returns the current frame statistics snapshot.
func (b *Batch) Stats() Statistics { return b.stats }

// DrawQuad draws a solid color quad centered at (x, y) using the white
// texture.
func (b *Batch) DrawQuad(x, y, w, h float32, color colors.Color) {
	b.ensureQuadCapacity()
	b.putQuad(x, y, w, h, color, b.texSlot(b.white), 0, 0, 1, 1)
}

// DrawTexturedQuad draws a tinted textured quad centered at (x, y).
func (b *Batch) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color) {
	b.ensureQuadCapacity()
	b.putQuad(x, y, w, h, tint, b.texSlot(tex), 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws a textured sub-rect (UV rect: u0,v0 -> u1,v1).
func (b *Batch) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, u0, v0, u1, v1 float32) {
	b.ensureQuadCapacity()
	b.putQuad(x, y, w, h, tint, b.texSlot(tex), u0, v0, u1, v1)
}

// DrawSubTexQuad draws a quad using a SubTexture.
func (b *Batch) DrawSubTexQuad(x, y, w, h float32, sub SubTexture, tint colors.Color) {
	b.ensureQuadCapacity()
	b.putQuad(x, y, w, h, tint, b.texSlot(sub.Texture), sub.U0, sub.V0, sub.U1, sub.V1)
}

// DrawLine draws a line segment as a thin quad.
func (b *Batch) DrawLine(x1, y1, x2, y2, thickness float32, color colors.Color) {
	b.ensureQuadCapacity()

	dx, dy := x2-x1, y2-y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return
	}
	// unit normal scaled by half thickness
	nx := -dy / length * thickness * 0.5
	ny := dx / length * thickness * 0.5

	slot := b.texSlot(b.white)
	b.putVertex(x1+nx, y1+ny, color, 0, 0, slot)
	b.putVertex(x2+nx, y2+ny, color, 1, 0, slot)
	b.putVertex(x1-nx, y1-ny, color, 0, 1, slot)
	b.putVertex(x2-nx, y2-ny, color, 1, 1, slot)
	b.stats.QuadCount++
}

// --- internals ---

func (b *Batch) texSlot(t core.Texture) float32 {
	for i := 0; i < b.texCnt; i++ {
		if b.texArr[i] == t {
			return float32(i)
		}
	}
	if b.texCnt >= maxTexSlots {
		// flush and reset texture bindings; invalidates multi-pass rewind
		b.flush()
		b.resetTexSlots()
	}
	b.texArr[b.texCnt] = t
	b.texCnt++
	b.stats.TextureCount = b.texCnt
	return float32(b.texCnt - 1)
}

func (b *Batch) putQuad(x, y, w, h float32, color colors.Color, texIndex, u0, v0, u1, v1 float32) {
	halfW := w * 0.5
	halfH := h * 0.5

	// corners TL, TR, BL, BR; positive Y goes down so top is -halfH
	b.putVertex(x-halfW, y-halfH, color, u0, v0, texIndex)
	b.putVertex(x+halfW, y-halfH, color, u1, v0, texIndex)
	b.putVertex(x-halfW, y+halfH, color, u0, v1, texIndex)
	b.putVertex(x+halfW, y+halfH, color, u1, v1, texIndex)
	b.stats.QuadCount++
}

func (b *Batch) putVertex(x, y float32, color colors.Color, u, v, texIndex float32) {
	i := b.idx
	b.verts[i+0] = x
	b.verts[i+1] = y
	b.verts[i+2] = color[0]
	b.verts[i+3] = color[1]
	b.verts[i+4] = color[2]
	b.verts[i+5] = color[3]
	b.verts[i+6] = u
	b.verts[i+7] = v
	b.verts[i+8] = texIndex
	b.idx += vStride
}

func (b *Batch) flush() {
	quads := b.idx / floatsPerQuad
	if quads == 0 || b.pipe == nil {
		b.idx = 0
		return
	}

	if err := b.r.UpdateMesh(b.mesh, b.verts[:b.idx], b.inds[:quads*indsPerQuad]); err != nil {
		panic(err)
	}

	for k := range b.samplers {
		delete(b.samplers, k)
	}
	for i := 0; i < b.texCnt; i++ {
		b.samplers[b.texNames[i]] = b.texArr[i]
	}

	for k := range b.uniforms {
		delete(b.uniforms, k)
	}
	b.uniforms["uVP"] = [16]float32(b.projection)
	if b.shader != nil {
		for k, v := range b.shader.staged {
			b.uniforms[k] = v
		}
	}

	b.r.Draw(core.DrawCmd{
		Pipe:     b.pipe,
		Mesh:     b.mesh,
		Uniforms: b.uniforms,
		Samplers: b.samplers,
	})
	b.stats.DrawCalls++
	b.idx = 0
}

func (b *Batch) resetTexSlots() {
	for i := range b.texArr {
		b.texArr[i] = nil
	}
	b.texArr[0] = b.white
	b.texCnt = 1
}

func (b *Batch) ensureQuadCapacity() {
	if b.idx+floatsPerQuad > len(b.verts) {
		// forced flush; invalidates multi-pass rewind for this frame
		b.flush()
	}
}
