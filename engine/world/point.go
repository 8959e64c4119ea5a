package world

import "math"

// Point is a position in game space. X grows east, Y grows south (toward the
// viewer), Z grows up.
type Point struct {
	X, Y, Z float32
}

// ViewSpcX converts to view-space X. Game X and view X share scale.
func (p Point) ViewSpcX() float32 {
	return p.X
}

// ViewSpcY converts to view-space Y (Y-up). Depth is compressed by the
// projection factor and height is folded into the same axis.
func (p Point) ViewSpcY() float32 {
	return -p.Y*ProjectionFactorY + p.Z*ProjectionFactorZ
}

// ChunkX returns the X coordinate of the chunk containing the point.
func (p Point) ChunkX() int {
	return int(math.Floor(float64(p.X) / ChunkGameWidth))
}

// ChunkY returns the Y coordinate of the chunk containing the point. The
// height term is ignored, same approximation as the view transform.
func (p Point) ChunkY() int {
	return int(math.Floor(float64(p.Y) / ChunkGameDepth))
}

// Add returns the point translated by (x, y, z).
func (p Point) Add(x, y, z float32) Point {
	return Point{p.X + x, p.Y + y, p.Z + z}
}
