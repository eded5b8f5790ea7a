package geometry

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestSphereCounts(t *testing.T) {
	tcs := []struct {
		w, h         int
		wantVertices int
		wantIndices  int
	}{
		{32, 20, 693, 3648},
		{3, 2, 12, 18},
		{8, 6, 63, 240},
	}
	for _, tc := range tcs {
		vertices, indices := NewSphere(0.9, tc.w, tc.h)
		if len(vertices) != tc.wantVertices {
			t.Fatalf("NewSphere(0.9, %d, %d) vertices=%d; want %d", tc.w, tc.h, len(vertices), tc.wantVertices)
		}
		if len(indices) != tc.wantIndices {
			t.Fatalf("NewSphere(0.9, %d, %d) indices=%d; want %d", tc.w, tc.h, len(indices), tc.wantIndices)
		}
		for _, idx := range indices {
			if int(idx) >= len(vertices) {
				t.Fatalf("index %d out of range %d", idx, len(vertices))
			}
		}
	}
}

func TestSphereVerticesOnSurface(t *testing.T) {
	vertices, _ := NewSphere(0.9, 32, 20)
	for i, v := range vertices {
		n := math.Sqrt(float64(v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2]))
		if math.Abs(n-1) > 1e-5 {
			t.Fatalf("vertex %d normal length=%v; want 1", i, n)
		}
		r := math.Sqrt(float64(v.Position[0]*v.Position[0] + v.Position[1]*v.Position[1] + v.Position[2]*v.Position[2]))
		if math.Abs(r-0.9) > 1e-5 {
			t.Fatalf("vertex %d radius=%v; want 0.9", i, r)
		}
	}
	if top := vertices[0]; top.Position[1] < 0.899 || top.UV[1] != 1 {
		t.Fatalf("first vertex=%+v; want top pole with v=1", top)
	}
	if u := vertices[0].UV[0]; math.Abs(float64(u)-0.5/32) > 1e-6 {
		t.Fatalf("top pole u=%v; want half segment offset", u)
	}
}

func TestParticleFieldBounds(t *testing.T) {
	f := NewParticleField(1000, rand.New(rand.NewPCG(1, 2)))
	if f.Len() != 1000 || len(f.Scales) != 1000 {
		t.Fatalf("Len()=%d scales=%d; want 1000", f.Len(), len(f.Scales))
	}
	for i, p := range f.Positions {
		if p[0] < -5 || p[0] >= 5 || p[2] < -5 || p[2] >= 5 {
			t.Fatalf("particle %d xz=(%v, %v); want in [-5, 5)", i, p[0], p[2])
		}
		if p[1] < -1.05 || p[1] >= 9.45 {
			t.Fatalf("particle %d y=%v; want in [-1.05, 9.45)", i, p[1])
		}
		if s := f.Scales[i]; s < 0 || s >= 1 {
			t.Fatalf("particle %d scale=%v; want in [0, 1)", i, s)
		}
	}
	if got := len(f.Instances()); got != 1000 {
		t.Fatalf("len(Instances())=%d; want 1000", got)
	}
}

func TestParticleFieldSeeded(t *testing.T) {
	a := NewParticleField(10, rand.New(rand.NewPCG(7, 7)))
	b := NewParticleField(10, rand.New(rand.NewPCG(7, 7)))
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Scales[i] != b.Scales[i] {
			t.Fatalf("particle %d differs for identical seeds", i)
		}
	}
	if n := NewParticleField(-3, rand.New(rand.NewPCG(1, 1))).Len(); n != 0 {
		t.Fatalf("NewParticleField(-3).Len()=%d; want 0", n)
	}
}
