package vmath

import (
	"math"
	"testing"
)

func TestRayIntersectPlaneZ(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		want Vec3F
		ok   bool
	}{
		{"straight on", Ray{Origin: Vec3F{Z: 9}, Dir: Vec3F{Z: -1}}, Vec3F{}, true},
		{"oblique", Ray{Origin: Vec3F{X: 1, Y: 1, Z: 4}, Dir: V3FNormalize(Vec3F{X: 1, Z: -1})}, Vec3F{X: 5, Y: 1}, true},
		{"parallel", Ray{Origin: Vec3F{Z: 9}, Dir: Vec3F{X: 1}}, Vec3F{}, false},
		{"pointing away", Ray{Origin: Vec3F{Z: 9}, Dir: Vec3F{Z: 1}}, Vec3F{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlaneZ(0)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if V3FDistSq(got, tt.want) > 1e-18 {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: Vec3F{1, 1, 1}, Dir: Vec3F{Y: 1}}
	if got := r.At(2.5); got != (Vec3F{1, 3.5, 1}) {
		t.Errorf("Expected {1 3.5 1}, got %+v", got)
	}
	if got, ok := r.IntersectPlaneZ(1); ok || math.IsNaN(got.X) {
		t.Errorf("Expected ray in plane direction rejected, got %+v %v", got, ok)
	}
}
