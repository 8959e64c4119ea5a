package colors

// Color is RGBA in [0,1], the layout the vertex format and shader uniforms
// expect.
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

// Scaled multiplies the RGB channels by f, leaving alpha alone. Used for
// height shading of block sprites.
func (c Color) Scaled(f float32) Color {
	c[0] *= f
	c[1] *= f
	c[2] *= f
	return c
}
