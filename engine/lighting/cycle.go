package lighting

import (
	"math"

	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/world"
)

// Cycle is a minimal day/night light engine: the sun sweeps a half circle
// over DayLength seconds, the moon takes the other half. Good enough to
// exercise the camera's lighting uniforms in the sandbox.
type Cycle struct {
	DayLength float64 // seconds per full day, defaults to 120
	t         float64
}

func NewCycle() *Cycle {
	return &Cycle{DayLength: 120}
}

// Advance moves time of day forward by dt seconds.
func (c *Cycle) Advance(dt float64) {
	c.t += dt
	for c.t >= c.DayLength {
		c.t -= c.DayLength
	}
}

// phase in [0, 2π): 0..π is day, π..2π is night.
func (c *Cycle) phase() float64 {
	return c.t / c.DayLength * 2 * math.Pi
}

func (c *Cycle) Sun(world.Point) GlobalLight {
	a := c.phase()
	elev := math.Sin(a)
	bright := float32(math.Max(0, elev))
	return GlobalLight{
		Normal: geom.Vec3{X: float32(math.Cos(a)), Y: -0.3, Z: float32(elev)}.Nor(),
		Color:  colors.Color{bright, bright * 0.95, bright * 0.8, 1},
	}
}

func (c *Cycle) Moon(world.Point) (GlobalLight, bool) {
	a := c.phase()
	elev := -math.Sin(a) // opposite the sun
	if elev <= 0 {
		return GlobalLight{}, false
	}
	bright := float32(elev) * 0.25
	return GlobalLight{
		Normal: geom.Vec3{X: float32(-math.Cos(a)), Y: -0.3, Z: float32(elev)}.Nor(),
		Color:  colors.Color{bright * 0.7, bright * 0.8, bright, 1},
	}, true
}

func (c *Cycle) Ambient(world.Point) colors.Color {
	a := c.phase()
	base := float32(0.15 + 0.25*math.Max(0, math.Sin(a)))
	return colors.Color{base, base, base * 1.1, 1}
}
