package geom

// Mat4 is a 4x4 matrix stored column-major (GLSL-style), so the element at
// row r, column c lives at index c*4+r. The M<row><col> constants below name
// the cells the renderer pokes at directly.
type Mat4 [16]float32

// Cell indices, row-major naming over column-major storage.
const (
	M00 = 0
	M01 = 4
	M02 = 8
	M03 = 12
	M10 = 1
	M11 = 5
	M12 = 9
	M13 = 13
	M20 = 2
	M21 = 6
	M22 = 10
	M23 = 14
	M30 = 3
	M31 = 7
	M32 = 11
	M33 = 15
)

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[M00], m[M11], m[M22], m[M33] = 1, 1, 1, 1
	return m
}

// Ortho builds an orthographic projection. Callers may pass left > right or
// bottom > top to flip an axis; the math holds either way.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	var m Mat4
	m[M00] = 2 / (right - left)
	m[M11] = 2 / (top - bottom)
	m[M22] = -2 / (far - near)
	m[M03] = -(right + left) / (right - left)
	m[M13] = -(top + bottom) / (top - bottom)
	m[M23] = -(far + near) / (far - near)
	m[M33] = 1
	return m
}

// LookAt builds a view matrix for an eye looking at center with the given up
// hint. Matches the GL convention: the view axis maps onto -Z.
func LookAt(eye, center, up Vec3) Mat4 {
	dir := center.Sub(eye).Nor()
	right := dir.Crs(up).Nor()
	newUp := right.Crs(dir)

	var m Mat4
	m[M00], m[M01], m[M02] = right.X, right.Y, right.Z
	m[M10], m[M11], m[M12] = newUp.X, newUp.Y, newUp.Z
	m[M20], m[M21], m[M22] = -dir.X, -dir.Y, -dir.Z
	m[M03] = -(right.X*eye.X + right.Y*eye.Y + right.Z*eye.Z)
	m[M13] = -(newUp.X*eye.X + newUp.Y*eye.Y + newUp.Z*eye.Z)
	m[M23] = dir.X*eye.X + dir.Y*eye.Y + dir.Z*eye.Z
	m[M33] = 1
	return m
}

// Mul returns the matrix product a*b (apply b first, then a, for column
// vectors).
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}
