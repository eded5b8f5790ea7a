package medusa

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
)

// Config holds the window, renderer and scene constants of the medusa scene.
type Config struct {
	// Window
	Width  int
	Height int
	Title  string

	// Renderer
	VSync bool
	FPS   float64 // frame cap, 0 paces frames by the display
	MSAA  int

	// Run
	Seed    uint64 // particle field seed, 0 picks a random one
	Profile bool
	Console bool

	// Sphere
	SphereRadius         float32
	SphereWidthSegments  int
	SphereHeightSegments int

	// Particles
	ParticleCount    int
	ParticleVertices int

	// Camera
	CameraFov      float32 // degrees
	CameraNear     float32
	CameraFar      float32
	CameraPosition [3]float32
	DampingFactor  float32

	// Debug panel
	PanelWidth int

	// MarshalWorkers overrides the scene's uniform marshaling pool size when positive.
	MarshalWorkers int
}

// DefaultConfig returns the configuration the scene was designed with.
//
// Returns:
//   - *Config: a fresh default configuration
func DefaultConfig() *Config {
	return &Config{
		Width:  1280,
		Height: 720,
		Title:  "medusa",

		VSync: true,
		FPS:   0,
		MSAA:  4,

		SphereRadius:         0.9,
		SphereWidthSegments:  32,
		SphereHeightSegments: 20,

		ParticleCount:    1000,
		ParticleVertices: 6,

		CameraFov:      75,
		CameraNear:     0.1,
		CameraFar:      100,
		CameraPosition: [3]float32{-3, 5, 3},
		DampingFactor:  0.05,

		PanelWidth: 400,
	}
}

// Validate reports the first setting that cannot be used.
//
// Returns:
//   - error: nil when the configuration is usable
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.FPS < 0:
		return fmt.Errorf("fps %v must not be negative", c.FPS)
	case c.SphereWidthSegments < 3 || c.SphereHeightSegments < 2:
		return fmt.Errorf("sphere needs at least 3x2 segments, got %dx%d", c.SphereWidthSegments, c.SphereHeightSegments)
	case c.ParticleCount < 0:
		return fmt.Errorf("particle count %d must not be negative", c.ParticleCount)
	case c.CameraNear <= 0 || c.CameraFar <= c.CameraNear:
		return fmt.Errorf("camera planes near=%v far=%v are invalid", c.CameraNear, c.CameraFar)
	case !(c.CameraFov > 0 && c.CameraFov < 180):
		return fmt.Errorf("camera fov %v must be within (0, 180) degrees", c.CameraFov)
	}
	if _, ok := renderer.ParseMSAASampleCount(c.MSAA); !ok {
		return fmt.Errorf("msaa %d: %w", c.MSAA, errUnsupportedMSAA)
	}
	return nil
}

var errUnsupportedMSAA = errors.New("sample count must be 0, 1, 4, 8 or 16")

// DebugState holds the hex strings behind the panel's color controls. Color bindings store
// the normalized value back into it; nothing else reads or writes it.
type DebugState struct {
	ColorStart     string
	ColorEnd       string
	ParticlesStart string
	ClearColor     string
}

// DefaultClearColor is the background behind the scene.
const DefaultClearColor = "#201919"

// NewDebugState returns the state matching the materials' default colors.
//
// Returns:
//   - *DebugState: the initial panel state
func NewDebugState() *DebugState {
	return &DebugState{
		ColorStart:     material.DefaultMedusaColorStart,
		ColorEnd:       material.DefaultMedusaColorEnd,
		ParticlesStart: material.DefaultParticleColorStart,
		ClearColor:     DefaultClearColor,
	}
}

// colors parses every state color.
func (s *DebugState) colors() (colorStart, colorEnd, particlesStart, clearColor common.Color, err error) {
	parse := func(name, hex string) common.Color {
		if err != nil {
			return common.Color{}
		}
		var c common.Color
		if c, err = common.ParseHex(hex); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
		}
		return c
	}
	colorStart = parse("colorStart", s.ColorStart)
	colorEnd = parse("colorEnd", s.ColorEnd)
	particlesStart = parse("particlesStart", s.ParticlesStart)
	clearColor = parse("clearColor", s.ClearColor)
	return colorStart, colorEnd, particlesStart, clearColor, err
}
