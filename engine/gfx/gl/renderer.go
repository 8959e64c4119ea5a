package glbackend

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/quarryengine/quarry/engine/core"
)

type pipeline struct {
	program   uint32
	depthTest bool
	blend     bool
	uniforms  map[string]int32 // location cache
}

type texture struct {
	id uint32
}

type mesh struct {
	vao        uint32
	vbo        uint32
	ibo        uint32
	vertexCap  int // floats
	indexCap   int
	indexCount int
}

type RendererGL struct {
	win core.Window
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

func (r *RendererGL) Shutdown() {}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Viewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource+"\x00", desc.FragmentSource+"\x00")
	if err != nil {
		return nil, err
	}
	return &pipeline{
		program:   prog,
		depthTest: desc.DepthTest,
		blend:     desc.Blend,
		uniforms:  map[string]int32{},
	}, nil
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("unsupported texture format %d", desc.Format)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapV))

	var ptr unsafe.Pointer
	if len(desc.Pixels) > 0 {
		ptr = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &texture{id: id}, nil
}

func glFilter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vertexCap = len(desc.Vertices)
	gl.BufferData(gl.ARRAY_BUFFER, m.vertexCap*4, glPtrOrNil(desc.Vertices), gl.DYNAMIC_DRAW)

	for _, a := range desc.Layout.Attributes {
		if a.Type != core.AttribFloat32 {
			return nil, fmt.Errorf("unsupported attrib type %d", a.Type)
		}
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointer(uint32(a.Location), int32(a.Size), gl.FLOAT, false,
			int32(desc.Layout.Stride), unsafe.Pointer(uintptr(a.Offset)))
	}

	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	m.indexCap = len(desc.Indices)
	m.indexCount = len(desc.Indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.indexCap*4, glPtrOrNilU32(desc.Indices), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return m, nil
}

// UpdateMesh re-uploads vertex data and, when indices is non-nil, index
// data into the existing buffers. The subsequent Draw covers exactly the
// uploaded indices.
func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return fmt.Errorf("UpdateMesh: foreign mesh handle %T", cm)
	}
	if len(vertices) > m.vertexCap {
		return fmt.Errorf("UpdateMesh: %d floats exceed capacity %d", len(vertices), m.vertexCap)
	}
	if len(indices) > m.indexCap {
		return fmt.Errorf("UpdateMesh: %d indices exceed capacity %d", len(indices), m.indexCap)
	}
	if len(vertices) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}
	if indices != nil {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
		m.indexCount = len(indices)
	}
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok {
		return
	}

	if p.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if p.blend {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}

	gl.UseProgram(p.program)

	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		switch u := v.(type) {
		case float32:
			gl.Uniform1f(loc, u)
		case [2]float32:
			gl.Uniform2f(loc, u[0], u[1])
		case [3]float32:
			gl.Uniform3f(loc, u[0], u[1], u[2])
		case [4]float32:
			gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &u[0])
		case int:
			gl.Uniform1i(loc, int32(u))
		}
	}

	// stable unit assignment so repeated draws reuse the same bindings
	names := make([]string, 0, len(cmd.Samplers))
	for name := range cmd.Samplers {
		names = append(names, name)
	}
	sort.Strings(names)
	for unit, name := range names {
		t, ok := cmd.Samplers[name].(*texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		if loc := p.location(name); loc >= 0 {
			gl.Uniform1i(loc, int32(unit))
		}
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func glPtrOrNil(data []float32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func glPtrOrNilU32(data []uint32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
