package spritebatch

import "github.com/quarryengine/quarry/engine/core"

// Shader wraps a pipeline plus staged uniform values. Values staged through
// SetUniformf are sent with every flush until overwritten.
type Shader struct {
	pipe   core.Pipeline
	staged map[string]any
}

// NewShader compiles a pipeline for use with a Batch.
func NewShader(r core.Renderer, vertSrc, fragSrc string) (*Shader, error) {
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}
	return &Shader{pipe: pipe, staged: map[string]any{}}, nil
}

// DefaultShader compiles the built-in world shader.
func DefaultShader(r core.Renderer) (*Shader, error) {
	return NewShader(r, defaultVertSrc, defaultFragSrc)
}

// ColorShader compiles the built-in untextured shader used for shape
// overlays.
func ColorShader(r core.Renderer) (*Shader, error) {
	return NewShader(r, defaultVertSrc, colorFragSrc)
}

// SetUniformf stages a float uniform of 1 to 4 or 16 components. Other
// arities are dropped.
func (s *Shader) SetUniformf(name string, values ...float32) {
	switch len(values) {
	case 1:
		s.staged[name] = values[0]
	case 2:
		s.staged[name] = [2]float32{values[0], values[1]}
	case 3:
		s.staged[name] = [3]float32{values[0], values[1], values[2]}
	case 4:
		s.staged[name] = [4]float32{values[0], values[1], values[2], values[3]}
	case 16:
		var m [16]float32
		copy(m[:], values)
		s.staged[name] = m
	}
}

const defaultVertSrc = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
layout(location=3) in float aTexIndex;

uniform mat4 uVP;

out vec4 vColor;
out vec2 vUV;
flat out int vTexIndex;

void main() {
    vColor = aColor;
    vUV = vec2(aUV.x, 1.0 - aUV.y);
    vTexIndex = int(aTexIndex);
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
`

const defaultFragSrc = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
flat in int vTexIndex;

uniform sampler2D uTex[16];
uniform vec3 u_cameraPos;
uniform vec3 u_fogColor;
uniform vec2 u_resBuffer;
uniform float u_autoShade;
uniform float u_ambientOcclusion;
uniform vec3 u_sunNormal;
uniform vec4 u_sunColor;
uniform vec3 u_moonNormal;
uniform vec4 u_moonColor;
uniform vec4 u_ambientColor;

out vec4 FragColor;

void main() {
    vec4 texel = texture(uTex[vTexIndex], vUV);
    vec4 col = texel * vColor;

    // directional light approximation on the sprite plane
    vec3 n = vec3(0.0, 0.0, 1.0);
    float sun = max(dot(n, normalize(u_sunNormal + vec3(0.0, 0.0, 1e-4))), 0.0);
    float moon = max(dot(n, normalize(u_moonNormal + vec3(0.0, 0.0, 1e-4))), 0.0);
    vec3 light = u_sunColor.rgb * sun + u_moonColor.rgb * moon + u_ambientColor.rgb;
    col.rgb *= mix(vec3(1.0), light, u_sunColor.a);

    // vertical shading and screen-space fog toward the top
    float depth = gl_FragCoord.y / max(u_resBuffer.y, 1.0);
    col.rgb *= mix(1.0, 1.0 - u_ambientOcclusion * (1.0 - depth), u_autoShade);
    col.rgb = mix(col.rgb, u_fogColor, (1.0 - depth) * 0.25);

    FragColor = col;
}
`

const colorFragSrc = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
flat in int vTexIndex;

uniform sampler2D uTex[16];

out vec4 FragColor;

void main() {
    FragColor = texture(uTex[vTexIndex], vUV) * vColor;
}
`
