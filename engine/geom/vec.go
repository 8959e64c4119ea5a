package geom

import "math"

// Vec2 is a 2D vector. Methods return new values; nothing mutates in place.
type Vec2 struct{ X, Y float32 }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scl(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dst returns the euclidean distance to o.
func (v Vec2) Dst(o Vec2) float32 {
	dx := float64(o.X - v.X)
	dy := float64(o.Y - v.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Nor returns the unit vector; the zero vector stays zero.
func (v Vec2) Nor() Vec2 {
	l := float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
	if l == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(l))
	return Vec2{v.X * inv, v.Y * inv}
}

// Vec3 is a 3D vector.
type Vec3 struct{ X, Y, Z float32 }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scl(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Crs returns the cross product v x o.
func (v Vec3) Crs(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Nor() Vec3 {
	l := float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y) + float64(v.Z)*float64(v.Z)
	if l == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(l))
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}
