package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseHex(t *testing.T) {
	tcs := []struct {
		in   string
		want Color
		ok   bool
	}{
		{in: "#000000", want: Color{0, 0, 0}, ok: true},
		{in: "#ffffff", want: Color{1, 1, 1}, ok: true},
		{in: "#ff0000", want: Color{1, 0, 0}, ok: true},
		{in: "#fff", want: Color{1, 1, 1}, ok: true},
		{in: "0b4e69", ok: false},
		{in: "#zzzzzz", ok: false},
		{in: "", ok: false},
	}

	for _, tc := range tcs {
		got, err := ParseHex(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseHex(%q) err=%v; want ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseHex(%q)=%+v; want %+v", tc.in, got, tc.want)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#0b4e69", "#000000", "#7b0b8a", "#201919"} {
		c := MustParseHex(hex)
		if got := c.Hex(); got != hex {
			t.Fatalf("MustParseHex(%q).Hex()=%q; want %q", hex, got, hex)
		}
	}
}

func TestColorLinear(t *testing.T) {
	white := Color{1, 1, 1}.Linear()
	for i, v := range white {
		if math.Abs(float64(v-1)) > 1e-6 {
			t.Fatalf("white.Linear()[%d]=%v; want 1", i, v)
		}
	}
	mid := Color{0.5, 0.5, 0.5}.Linear()
	if mid[0] >= 0.5 || mid[0] <= 0.2 {
		t.Fatalf("Color{0.5}.Linear()=%v; want value in (0.2, 0.5)", mid[0])
	}
	v4 := Color{1, 0, 0}.Vec4(0.25)
	if v4[3] != 0.25 {
		t.Fatalf("Vec4 alpha=%v; want 0.25", v4[3])
	}
}

func TestCapPixelRatio(t *testing.T) {
	nan := float32(math.NaN())
	tcs := []struct {
		in, want float32
	}{
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{0.5, 1},
		{0, 1},
		{nan, 1},
		{float32(math.Inf(1)), 2},
	}
	for _, tc := range tcs {
		if got := CapPixelRatio(tc.in); got != tc.want {
			t.Fatalf("CapPixelRatio(%v)=%v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestPerspectiveZODepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100)
	m := PerspectiveZO(mgl32.DegToRad(75), 1, near, far)

	project := func(z float32) float32 {
		clip := m.Mul4x1(mgl32.Vec4{0, 0, -z, 1})
		return clip.Z() / clip.W()
	}
	if d := project(near); math.Abs(float64(d)) > 1e-5 {
		t.Fatalf("depth at near plane=%v; want 0", d)
	}
	if d := project(far); math.Abs(float64(d-1)) > 1e-4 {
		t.Fatalf("depth at far plane=%v; want 1", d)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	offset := mgl32.Vec3{-3, 5, 3}
	r, az, el := CartesianToSpherical(offset)
	if math.Abs(float64(r)-math.Sqrt(43)) > 1e-5 {
		t.Fatalf("radius=%v; want sqrt(43)", r)
	}
	back := SphericalToCartesian(r, az, el)
	if !back.ApproxEqualThreshold(offset, 1e-4) {
		t.Fatalf("SphericalToCartesian(CartesianToSpherical(%v))=%v", offset, back)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "x", "y"); got != "x" {
		t.Fatalf("Coalesce=%q; want x", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Fatalf("Coalesce(0,0)=%d; want 0", got)
	}
}
