package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/go-gl/mathgl/mgl32"
)

// motionEpsilon is the pending-motion magnitude below which the rig is considered at rest.
const motionEpsilon = 1e-6

// cameraControllerImpl is the implementation of the CameraController interface.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32

	enableDamping bool
	dampingFactor float32

	// pending motion, released by Update
	azimuthDelta   float32
	elevationDelta float32
	zoomScale      float32
	panOffset      mgl32.Vec3

	// pendingPosition is set by WithPosition and resolved once all options have been applied
	pendingPosition *mgl32.Vec3
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller. Without options it orbits the origin at a
// radius of 5, damping enabled with factor 0.05.
//
// Parameters:
//   - options: a variadic list of CameraControllerOption functions
//
// Returns:
//   - CameraController: the new controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    5,
		elevation: 0,

		minRadius:    0.1,
		maxRadius:    float32(math.Inf(1)),
		minElevation: -math.Pi/2 + 1e-3,
		maxElevation: math.Pi/2 - 1e-3,

		rotateSpeed: 1,
		zoomSpeed:   1,
		panSpeed:    1,

		enableDamping: true,
		dampingFactor: 0.05,
		zoomScale:     1,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.pendingPosition != nil {
		cc.radius, cc.azimuth, cc.elevation = common.CartesianToSpherical(cc.pendingPosition.Sub(cc.target))
		cc.pendingPosition = nil
	}
	cc.clamp()
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from the orbit coordinates.
func (cc *cameraControllerImpl) updatePosition() {
	cc.position = cc.target.Add(common.SphericalToCartesian(cc.radius, cc.azimuth, cc.elevation))
}

func (cc *cameraControllerImpl) clamp() {
	cc.radius = mgl32.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = mgl32.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// localAxes returns the camera's right and up vectors in world space.
func (cc *cameraControllerImpl) localAxes() (right, up mgl32.Vec3) {
	back := cc.position.Sub(cc.target)
	if back.Len() < 1e-8 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	back = back.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(back)
	if right.Len() < 1e-8 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = back.Cross(right)
	return right, up
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius, cc.azimuth, cc.elevation = common.CartesianToSpherical(mgl32.Vec3{x, y, z}.Sub(cc.target))
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	turn := 2 * math.Pi * cc.rotateSpeed / viewportHeight
	cc.azimuthDelta -= dx * turn
	cc.elevationDelta += dy * turn
}

func (cc *cameraControllerImpl) Pan(dx, dy, viewportHeight, fovY float32) {
	if viewportHeight <= 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	// world units spanned by one pixel at the target's depth
	unitsPerPixel := 2 * cc.radius * float32(math.Tan(float64(fovY)/2)) / viewportHeight * cc.panSpeed
	right, up := cc.localAxes()
	cc.panOffset = cc.panOffset.Add(right.Mul(-dx * unitsPerPixel)).Add(up.Mul(dy * unitsPerPixel))
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	step := float32(math.Pow(0.95, float64(cc.zoomSpeed)))
	cc.zoomScale *= float32(math.Pow(float64(step), float64(delta)))
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	before := cc.position

	share := float32(1)
	if cc.enableDamping {
		share = cc.dampingFactor
	}

	cc.azimuth += cc.azimuthDelta * share
	cc.elevation += cc.elevationDelta * share
	cc.target = cc.target.Add(cc.panOffset.Mul(share))
	cc.radius *= cc.zoomScale
	cc.zoomScale = 1
	cc.clamp()
	cc.updatePosition()

	if cc.enableDamping {
		cc.azimuthDelta *= 1 - share
		cc.elevationDelta *= 1 - share
		cc.panOffset = cc.panOffset.Mul(1 - share)
	} else {
		cc.azimuthDelta, cc.elevationDelta = 0, 0
		cc.panOffset = mgl32.Vec3{}
	}
	if abs32(cc.azimuthDelta) < motionEpsilon {
		cc.azimuthDelta = 0
	}
	if abs32(cc.elevationDelta) < motionEpsilon {
		cc.elevationDelta = 0
	}
	if cc.panOffset.Len() < motionEpsilon {
		cc.panOffset = mgl32.Vec3{}
	}

	return cc.position.Sub(before).Len() > motionEpsilon
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) DampingEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enableDamping
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) SetDamping(enabled bool, factor float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enableDamping = enabled
	if factor > 0 && factor <= 1 {
		cc.dampingFactor = factor
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
