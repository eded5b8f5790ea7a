package medusa

import (
	"github.com/Carmen-Shannon/medusa/engine/debug"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
)

// Bindings returns the panel controls of the medusa scene in display order.
//
// Parameters:
//   - s: the scene whose uniforms the controls drive
//   - state: the panel state the color controls read and normalize
//   - r: the renderer whose clear color the clearColor control drives
//
// Returns:
//   - []debug.Binding: the controls
func Bindings(s *Scene, state *DebugState, r renderer.Renderer) []debug.Binding {
	return []debug.Binding{
		debug.NewNumberBinding("MedusaWidth", 1.0, 1.9, 0.001, s.MedusaMaterial.Width),
		debug.NewColorBinding("colorStart", &state.ColorStart, s.MedusaMaterial.ColorStart.Set),
		debug.NewColorBinding("colorEnd", &state.ColorEnd, s.MedusaMaterial.ColorEnd.Set),
		debug.NewNumberBinding("particlesSizes", 50, 500, 1, s.ParticleMaterial.Size),
		debug.NewColorBinding("particlesStart", &state.ParticlesStart, s.ParticleMaterial.ColorStart.Set),
		debug.NewColorBinding("clearColor", &state.ClearColor, r.SetClearColor),
	}
}
