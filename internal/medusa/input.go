package medusa

import (
	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine/camera"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// OrbitInput turns window pointer events into orbit controller motion: left drag orbits,
// right drag pans, the wheel zooms.
type OrbitInput struct {
	cam            camera.Camera
	viewportHeight func() int

	mode         dragMode
	lastX, lastY float32
}

// NewOrbitInput creates the pointer handler for a camera.
//
// Parameters:
//   - cam: the camera whose controller is steered
//   - viewportHeight: returns the current viewport height in window units
//
// Returns:
//   - *OrbitInput: the handler
func NewOrbitInput(cam camera.Camera, viewportHeight func() int) *OrbitInput {
	return &OrbitInput{cam: cam, viewportHeight: viewportHeight}
}

// MouseDown starts a drag.
func (in *OrbitInput) MouseDown(button int, x, y float32) {
	switch button {
	case common.MouseButtonLeft:
		in.mode = dragRotate
	case common.MouseButtonRight:
		in.mode = dragPan
	default:
		return
	}
	in.lastX, in.lastY = x, y
}

// MouseUp ends the drag started by the same button.
func (in *OrbitInput) MouseUp(button int, x, y float32) {
	if (button == common.MouseButtonLeft && in.mode == dragRotate) ||
		(button == common.MouseButtonRight && in.mode == dragPan) {
		in.mode = dragNone
	}
}

// MouseMove feeds the pointer delta of an active drag to the controller.
func (in *OrbitInput) MouseMove(x, y float32) {
	if in.mode == dragNone {
		return
	}
	dx, dy := x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y

	ctrl := in.cam.Controller()
	if ctrl == nil {
		return
	}
	h := float32(in.viewportHeight())
	switch in.mode {
	case dragRotate:
		ctrl.Rotate(dx, dy, h)
	case dragPan:
		ctrl.Pan(dx, dy, h, in.cam.Fov())
	}
}

// Scroll zooms in for positive deltas.
func (in *OrbitInput) Scroll(delta float32) {
	if ctrl := in.cam.Controller(); ctrl != nil {
		ctrl.Zoom(delta)
	}
}
