// Package lighting defines the global light query boundary the camera feeds
// into shader uniforms. The engine behind it (time of day, weather) is a
// collaborator; only a toy cycle ships here for the sandbox.
package lighting

import (
	"github.com/quarryengine/quarry/engine/colors"
	"github.com/quarryengine/quarry/engine/geom"
	"github.com/quarryengine/quarry/engine/world"
)

// GlobalLight is a directional light sample at a world position.
type GlobalLight struct {
	Normal geom.Vec3
	Color  colors.Color
}

// Engine answers per-position light queries. Moon reports ok=false when no
// moon is up; the camera then pushes zeroed uniforms.
type Engine interface {
	Sun(p world.Point) GlobalLight
	Moon(p world.Point) (GlobalLight, bool)
	Ambient(p world.Point) colors.Color
}
