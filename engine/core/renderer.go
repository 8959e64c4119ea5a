package core

// Renderer abstracts the graphics backend. Handles are opaque; the backend
// owns their lifetime until Shutdown.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Viewport(x, y, w, h int)
	Clear(r, g, b, a float32)

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)

	Shutdown()
}

// Opaque backend handles.
type (
	Pipeline interface{}
	Texture  interface{}
	Mesh     interface{}
)

// PipelineDesc describes a shader program and its fixed-function state.
type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

// TextureDesc filters/wraps accept "nearest"/"linear" and "clamp"/"repeat";
// empty strings mean nearest/clamp.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte
	MinFilter     string
	MagFilter     string
	WrapU         string
	WrapV         string
}

// Vertex layout description for mesh creation.
type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int // component count
	Type     AttribType
	Offset   int // bytes from vertex start
}

type VertexLayout struct {
	Stride     int // bytes per vertex
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// DrawCmd is a single indexed draw covering the mesh's current index data.
// Uniform values must be one of float32, [2]float32, [3]float32,
// [4]float32, [16]float32 or int.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture // uniform name -> texture; units assigned by sorted name
}
