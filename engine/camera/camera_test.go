package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestController(options ...CameraControllerOption) CameraController {
	return NewCameraController(append([]CameraControllerOption{WithPosition(-3, 5, 3)}, options...)...)
}

func TestWithPositionDerivesOrbit(t *testing.T) {
	cc := newTestController()
	got := cc.Position()
	want := mgl32.Vec3{-3, 5, 3}
	if !got.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("Position()=%v; want %v", got, want)
	}
	if r := cc.Radius(); math.Abs(float64(r)-math.Sqrt(43)) > 1e-4 {
		t.Fatalf("Radius()=%v; want %v", r, math.Sqrt(43))
	}
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewCamera(WithFov(mgl32.DegToRad(75)), WithController(newTestController()))

	tcs := []struct {
		aspect float32
		want   float32
	}{
		{800.0 / 600.0, 800.0 / 600.0},
		{0, 800.0 / 600.0},
		{-2, 800.0 / 600.0},
		{float32(math.NaN()), 800.0 / 600.0},
		{2, 2},
	}
	for _, tc := range tcs {
		c.SetAspect(tc.aspect)
		if got := c.Aspect(); got != tc.want {
			t.Fatalf("SetAspect(%v): Aspect()=%v; want %v", tc.aspect, got, tc.want)
		}
		p := c.ProjectionMatrix()
		if math.Abs(float64(p[5]/p[0]-tc.want)) > 1e-4 {
			t.Fatalf("SetAspect(%v): projection aspect=%v; want %v", tc.aspect, p[5]/p[0], tc.want)
		}
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewCamera(WithController(newTestController()))
	origin := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	// the target sits straight ahead on -Z in view space
	if math.Abs(float64(origin.X())) > 1e-4 || math.Abs(float64(origin.Y())) > 1e-4 || origin.Z() >= 0 {
		t.Fatalf("view-space origin=%v; want on -Z axis", origin)
	}
	if math.Abs(float64(-origin.Z())-math.Sqrt(43)) > 1e-3 {
		t.Fatalf("view-space depth=%v; want %v", -origin.Z(), math.Sqrt(43))
	}
}

func TestUniformMarshalLayout(t *testing.T) {
	c := NewCamera(WithController(newTestController()))
	u := c.Uniform()
	if got := u.Size(); got != 144 {
		t.Fatalf("Size()=%d; want 144", got)
	}
	buf := u.Marshal()
	if len(buf) != 144 {
		t.Fatalf("len(Marshal())=%d; want 144", len(buf))
	}
	if !mgl32.Vec3(u.Position).ApproxEqualThreshold(mgl32.Vec3{-3, 5, 3}, 1e-4) {
		t.Fatalf("Position=%v; want [-3 5 3]", u.Position)
	}
}

func TestDampingGlidesToRest(t *testing.T) {
	cc := newTestController(WithDamping(true, 0.05))
	start := cc.Azimuth()
	cc.Rotate(-100, 0, 600)

	if !cc.Update() {
		t.Fatalf("Update()=false after Rotate; want true")
	}
	first := cc.Azimuth() - start
	total := float32(2 * math.Pi * 100 / 600)
	if math.Abs(float64(first-total*0.05)) > 1e-5 {
		t.Fatalf("first step=%v; want %v", first, total*0.05)
	}

	moved := 1
	for cc.Update() {
		moved++
		if moved > 1000 {
			t.Fatalf("camera still moving after %d updates", moved)
		}
	}
	if got := cc.Azimuth() - start; math.Abs(float64(got-total)) > 1e-3 {
		t.Fatalf("total rotation=%v; want %v", got, total)
	}
}

func TestNoDampingAppliesImmediately(t *testing.T) {
	cc := newTestController(WithDamping(false, 0.05))
	start := cc.Azimuth()
	cc.Rotate(-60, 0, 600)
	cc.Update()
	want := float32(2 * math.Pi * 60 / 600)
	if got := cc.Azimuth() - start; math.Abs(float64(got-want)) > 1e-5 {
		t.Fatalf("rotation=%v; want %v", got, want)
	}
	if cc.Update() {
		t.Fatalf("Update()=true with no pending motion; want false")
	}
}

func TestElevationAndRadiusClamped(t *testing.T) {
	cc := newTestController(WithDamping(false, 1), WithRadiusBounds(1, 10))
	cc.Rotate(0, 100000, 600)
	cc.Update()
	if e := cc.Elevation(); e >= math.Pi/2 {
		t.Fatalf("Elevation()=%v; want < pi/2", e)
	}
	cc.Zoom(-1000)
	cc.Update()
	if r := cc.Radius(); r != 10 {
		t.Fatalf("Radius()=%v after zoom out; want 10", r)
	}
	cc.Zoom(1000)
	cc.Update()
	if r := cc.Radius(); r != 1 {
		t.Fatalf("Radius()=%v after zoom in; want 1", r)
	}
}

func TestPanMovesTarget(t *testing.T) {
	cc := newTestController(WithDamping(false, 1))
	cc.Pan(10, 0, 600, mgl32.DegToRad(75))
	cc.Update()
	if cc.Target().Len() == 0 {
		t.Fatalf("Target()=%v after pan; want moved", cc.Target())
	}
	if r := cc.Radius(); math.Abs(float64(r)-math.Sqrt(43)) > 1e-4 {
		t.Fatalf("Radius()=%v after pan; want unchanged", r)
	}
}
