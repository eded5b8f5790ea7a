package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the interface for an orbit camera rig: the camera sits on a sphere
// around a target point and is steered by pointer drags and wheel steps. With damping enabled,
// input accumulates as pending motion which Update releases gradually, so the camera glides to
// a stop after the pointer is released.
type CameraController interface {
	// Position retrieves the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera and re-derives the orbit radius, azimuth and elevation from
	// its offset to the current target.
	//
	// Parameters:
	//   - x, y, z: the world-space position
	SetPosition(x, y, z float32)

	// Target retrieves the orbit center.
	//
	// Returns:
	//   - mgl32.Vec3: the point the camera looks at
	Target() mgl32.Vec3

	// SetTarget moves the orbit center, keeping radius, azimuth and elevation.
	//
	// Parameters:
	//   - x, y, z: the world-space target
	SetTarget(x, y, z float32)

	// Rotate queues an orbit from a pointer drag. A drag across the full viewport height turns
	// the camera by one full revolution, matching common orbit-control feel.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: viewport height in pixels
	Rotate(dx, dy, viewportHeight float32)

	// Pan queues a target translation from a pointer drag so that the point under the cursor
	// follows the pointer at the target's depth.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: viewport height in pixels
	//   - fovY: the camera's vertical field of view in radians
	Pan(dx, dy, viewportHeight, fovY float32)

	// Zoom moves the camera toward (positive delta) or away from the target by a scale factor
	// per wheel step. The radius stays within the configured bounds.
	//
	// Parameters:
	//   - delta: wheel steps
	Zoom(delta float32)

	// Update advances the rig by one frame, applying the share of pending motion the damping
	// factor allows (or all of it when damping is off).
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool

	// Radius retrieves the distance between camera and target.
	Radius() float32

	// Azimuth retrieves the horizontal orbit angle around +Y, measured from +Z, in radians.
	Azimuth() float32

	// Elevation retrieves the vertical orbit angle above the XZ plane in radians.
	Elevation() float32

	// DampingEnabled reports whether motion is released gradually.
	DampingEnabled() bool

	// DampingFactor retrieves the share of pending motion released per Update.
	DampingFactor() float32

	// SetDamping configures inertia.
	//
	// Parameters:
	//   - enabled: true to glide, false to apply input immediately on the next Update
	//   - factor: share of pending motion applied per Update, in (0, 1]
	SetDamping(enabled bool, factor float32)
}
