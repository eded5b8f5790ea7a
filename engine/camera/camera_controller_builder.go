package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option applied to a controller during construction via NewCameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition places the camera at a world-space position. The orbit radius, azimuth and
// elevation are derived from its offset to the target once every option has been applied,
// so it may be combined with WithTarget in any order.
//
// Parameters:
//   - x, y, z: the initial camera position
//
// Returns:
//   - CameraControllerOption: a function that applies the position option to a controller
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		p := mgl32.Vec3{x, y, z}
		cc.pendingPosition = &p
	}
}

// WithTarget sets the point the camera orbits and looks at.
//
// Parameters:
//   - x, y, z: the orbit center
//
// Returns:
//   - CameraControllerOption: a function that applies the target option to a controller
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = mgl32.Vec3{x, y, z}
	}
}

// WithRadius sets the initial orbit distance.
//
// Parameters:
//   - radius: the distance between camera and target
//
// Returns:
//   - CameraControllerOption: a function that applies the radius option to a controller
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithRadiusBounds limits how close and how far the camera may orbit.
//
// Parameters:
//   - min: the minimum radius
//   - max: the maximum radius
//
// Returns:
//   - CameraControllerOption: a function that applies the radius bounds to a controller
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds limits the vertical orbit angle, in radians above the XZ plane.
//
// Parameters:
//   - min: the minimum elevation
//   - max: the maximum elevation
//
// Returns:
//   - CameraControllerOption: a function that applies the elevation bounds to a controller
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithDamping configures inertia. Factor is the share of pending motion applied per Update.
//
// Parameters:
//   - enabled: whether motion glides to a stop
//   - factor: share of pending motion released per Update, in (0, 1]
//
// Returns:
//   - CameraControllerOption: a function that applies the damping option to a controller
func WithDamping(enabled bool, factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.enableDamping = enabled
		if factor > 0 && factor <= 1 {
			cc.dampingFactor = factor
		}
	}
}

// WithRotateSpeed scales orbit rotation per pixel dragged.
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithZoomSpeed scales the zoom factor applied per wheel step.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed scales target translation per pixel dragged.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
