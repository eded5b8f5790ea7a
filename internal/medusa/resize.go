package medusa

import (
	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine/camera"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
)

// ResizeHandler keeps the camera, renderer and particle uniforms in step with the window.
type ResizeHandler struct {
	cam       camera.Camera
	r         renderer.Renderer
	particles *material.ParticleMaterial
}

// NewResizeHandler creates a handler for the given scene objects.
//
// Parameters:
//   - cam: the camera whose aspect follows the window
//   - r: the renderer whose size and pixel ratio follow the window
//   - particles: the material whose pixelRatio and resolution uniforms follow the renderer
//
// Returns:
//   - *ResizeHandler: the handler
func NewResizeHandler(cam camera.Camera, r renderer.Renderer, particles *material.ParticleMaterial) *ResizeHandler {
	return &ResizeHandler{cam: cam, r: r, particles: particles}
}

// Handle applies a new window size. Non-positive sizes, as reported for a minimized window,
// are ignored. Calling it twice with the same arguments is a no-op the second time.
//
// Parameters:
//   - width, height: the size in window units
//   - devicePixelRatio: framebuffer pixels per window unit
func (h *ResizeHandler) Handle(width, height int, devicePixelRatio float32) {
	if width <= 0 || height <= 0 {
		return
	}
	h.cam.SetAspect(float32(width) / float32(height))

	ratio := PixelRatio(devicePixelRatio)
	h.r.SetSize(width, height)
	h.r.SetPixelRatio(ratio)

	h.particles.PixelRatio.Set(ratio)
	bw, bh := h.r.DrawingBufferSize()
	h.particles.Resolution.Set([2]float32{float32(bw), float32(bh)})
}

// PixelRatio caps a device pixel ratio at 2, treating values below 1 and NaN as 1.
func PixelRatio(devicePixelRatio float32) float32 {
	return common.CapPixelRatio(devicePixelRatio)
}
