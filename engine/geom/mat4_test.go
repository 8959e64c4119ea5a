package geom

import (
	"math"
	"testing"
)

func transform(m Mat4, x, y, z float32) (float32, float32, float32) {
	tx := m[M00]*x + m[M01]*y + m[M02]*z + m[M03]
	ty := m[M10]*x + m[M11]*y + m[M12]*z + m[M13]
	tz := m[M20]*x + m[M21]*y + m[M22]*z + m[M23]
	return tx, ty, tz
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestOrthoMapsExtents(t *testing.T) {
	tests := []struct {
		name                   string
		l, r, b, tp            float32
		x, y                   float32
		wantX, wantY           float32
	}{
		{"center maps to origin", 0, 2, 0, 2, 1, 1, 0, 0},
		{"right edge maps to +1", 0, 2, 0, 2, 2, 1, 1, 0},
		{"top edge maps to +1", 0, 2, 0, 2, 1, 2, 0, 1},
		{"flipped x axis negates", 2, 0, 0, 2, 2, 1, -1, 0},
		{"flipped y axis negates", 0, 2, 2, 0, 1, 2, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Ortho(tt.l, tt.r, tt.b, tt.tp, -1, 1)
			gx, gy, _ := transform(m, tt.x, tt.y, 0)
			if !near(gx, tt.wantX) || !near(gy, tt.wantY) {
				t.Fatalf("got (%v, %v), want (%v, %v)", gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLookAtCentersEye(t *testing.T) {
	eye := Vec3{X: 5, Y: 7, Z: 1}
	m := LookAt(eye, Vec3{X: 5, Y: 7, Z: -1}, Vec3{X: 0, Y: -1, Z: 0})

	// a point straight ahead at distance 1 lands on -Z
	x, y, z := transform(m, 5, 7, 0)
	if !near(x, 0) || !near(y, 0) || !near(z, -1) {
		t.Fatalf("view of look target = (%v, %v, %v), want (0, 0, -1)", x, y, z)
	}

	// the flipped up hint mirrors both screen axes
	x, y, _ = transform(m, 6, 8, 0)
	if !near(x, -1) || !near(y, -1) {
		t.Fatalf("view of offset point = (%v, %v), want (-1, -1)", x, y)
	}
}

func TestMulAppliesRightFirst(t *testing.T) {
	scale := Identity()
	scale[M00] = 2

	translate := Identity()
	translate[M03] = 1

	// translate * scale: scale first, then translate
	m := translate.Mul(scale)
	x, _, _ := transform(m, 1, 0, 0)
	if !near(x, 3) {
		t.Fatalf("x = %v, want 3", x)
	}

	// the other composition order translates first
	m = scale.Mul(translate)
	x, _, _ = transform(m, 1, 0, 0)
	if !near(x, 4) {
		t.Fatalf("x = %v, want 4", x)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Ortho(0, 4, 0, 3, -1, 1)
	if got := m.Mul(Identity()); got != m {
		t.Fatalf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Fatalf("I * m = %v, want %v", got, m)
	}
}
