package medusa

// Loop is the per-frame tick of the medusa scene.
type Loop struct {
	scene *Scene
}

// NewLoop creates the tick for a scene.
//
// Parameters:
//   - s: the scene to animate
//
// Returns:
//   - *Loop: the loop
func NewLoop(s *Scene) *Loop {
	return &Loop{scene: s}
}

// Tick advances the scene to the given time: both time uniforms take the clock's elapsed
// seconds, the orbit controller releases one frame of damped motion, and the camera
// matrices are rebuilt. Matches engine.Engine's tick callback signature.
//
// Parameters:
//   - elapsed: seconds since start
//   - deltaTime: seconds since the previous frame, unused; damping is per frame
func (l *Loop) Tick(elapsed, deltaTime float32) {
	l.scene.MedusaMaterial.Time.Set(elapsed)
	l.scene.ParticleMaterial.Time.Set(elapsed)

	cam := l.scene.Camera()
	if ctrl := cam.Controller(); ctrl != nil {
		ctrl.Update()
	}
	cam.Update()
}
