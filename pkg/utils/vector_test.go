package utils

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 2}
	if got := a.Len(); got != 3 {
		t.Errorf("Len() = %v, want 3", got)
	}
	if got := a.Dist(Vec3{1, 2, 5}); got != 3 {
		t.Errorf("Dist() = %v, want 3", got)
	}
	n := a.Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalize().Len() = %v, want 1", n.Len())
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should stay zero, got %v", z)
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{Center: Vec3{0, 5, 10}, Extents: Vec3{10, 4, 6}}

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"中心", Vec3{0, 5, 10}, true},
		{"边界", Vec3{10, 9, 16}, true},
		{"X 越界", Vec3{10.1, 5, 10}, false},
		{"Z 越界", Vec3{0, 5, 3.9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if b.Min() != (Vec3{-10, 1, 4}) || b.Max() != (Vec3{10, 9, 16}) {
		t.Errorf("Min/Max mismatch: %v %v", b.Min(), b.Max())
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed should produce the same sequence")
		}
	}

	r := NewRandom(7)
	for i := 0; i < 100; i++ {
		v := r.Range(0.1, 0.3)
		if v < 0.1 || v >= 0.3 {
			t.Fatalf("Range out of bounds: %v", v)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
	if r.Chance(0) {
		t.Error("Chance(0) should never be true")
	}
}
