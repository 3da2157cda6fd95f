package vmath

import (
	"math"
	"testing"
)

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("Expected identical sequences at step %d", i)
		}
	}

	// Zero seed would lock xorshift at zero
	z := NewFastRand(0)
	if z.Next() == 0 {
		t.Error("Expected zero seed to be replaced")
	}
}

func TestFastRandRanges(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of [0,1): %f", f)
		}
		v := r.Range(2, 5)
		if v < 2 || v >= 5 {
			t.Fatalf("Range out of [2,5): %f", v)
		}
		n := r.Intn(10)
		if n < 0 || n >= 10 {
			t.Fatalf("Intn out of [0,10): %d", n)
		}
	}
	if r.Intn(0) != 0 || r.Intn(-3) != 0 {
		t.Error("Expected Intn of non-positive n to return 0")
	}
}

func TestFastRandUnitSphere(t *testing.T) {
	r := NewFastRand(3)
	var sum Vec3F
	const n = 20000
	for i := 0; i < n; i++ {
		v := r.UnitSphere()
		if math.Abs(V3FMag(v)-1) > 1e-9 {
			t.Fatalf("Expected unit length, got %f", V3FMag(v))
		}
		sum = V3FAdd(sum, v)
	}
	// Uniform directions average out near the origin
	mean := V3FScale(sum, 1.0/n)
	if V3FMag(mean) > 0.05 {
		t.Errorf("Expected mean direction near zero, got %+v", mean)
	}
}

func TestFastRandDisc(t *testing.T) {
	r := NewFastRand(11)
	inner := 0
	const n = 20000
	for i := 0; i < n; i++ {
		x, z := r.Disc(12)
		d := math.Hypot(x, z)
		if d > 12 {
			t.Fatalf("Point outside disc: %f", d)
		}
		if d < 6 {
			inner++
		}
	}
	// Area-uniform: a quarter of points fall inside half the radius
	frac := float64(inner) / n
	if frac < 0.22 || frac > 0.28 {
		t.Errorf("Expected ~0.25 inside half radius, got %f", frac)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{math.Inf(-1), 0, 1, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestVec3FOps(t *testing.T) {
	a := Vec3F{1, 2, 3}
	b := Vec3F{4, 5, 6}

	if got := V3FAdd(a, b); got != (Vec3F{5, 7, 9}) {
		t.Errorf("Expected add {5 7 9}, got %+v", got)
	}
	if got := V3FSub(b, a); got != (Vec3F{3, 3, 3}) {
		t.Errorf("Expected sub {3 3 3}, got %+v", got)
	}
	if got := V3FDot(a, b); got != 32 {
		t.Errorf("Expected dot 32, got %f", got)
	}
	if got := V3FCross(Vec3F{X: 1}, Vec3F{Y: 1}); got != (Vec3F{Z: 1}) {
		t.Errorf("Expected X cross Y = Z, got %+v", got)
	}
	if got := V3FDistSq(a, b); got != 27 {
		t.Errorf("Expected distSq 27, got %f", got)
	}
	if got := V3FNormalize(Vec3F{}); got != (Vec3F{}) {
		t.Errorf("Expected zero vector to stay zero, got %+v", got)
	}
	if n := V3FNormalize(Vec3F{3, 0, 4}); math.Abs(V3FMag(n)-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", V3FMag(n))
	}
	if V3FIsFinite(Vec3F{X: math.NaN()}) || V3FIsFinite(Vec3F{Y: math.Inf(1)}) {
		t.Error("Expected non-finite vectors to be detected")
	}
}

func TestV3FBuffer(t *testing.T) {
	buf := make([]float32, 6)
	V3FPut(buf, 1, Vec3F{1.5, -2, 3})
	if buf[3] != 1.5 || buf[4] != -2 || buf[5] != 3 {
		t.Errorf("Expected slot 1 written, got %v", buf)
	}
	if got := V3FAt(buf, 1); got != (Vec3F{1.5, -2, 3}) {
		t.Errorf("Expected read back, got %+v", got)
	}
}
