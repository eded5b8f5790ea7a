package medusa

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine"
	"github.com/Carmen-Shannon/medusa/engine/debug"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
	"github.com/Carmen-Shannon/medusa/engine/window"
)

// Run opens the window and renders the medusa scene until ctx is done or the window closes.
// It must be called from the main goroutine with the OS thread locked.
//
// Parameters:
//   - ctx: cancels the render loop
//   - cfg: the run configuration
//
// Returns:
//   - error: a configuration, scene or frame error
func Run(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	msaa, _ := renderer.ParseMSAASampleCount(cfg.MSAA)

	win := window.NewWindow(
		window.WithTitle(common.Coalesce(cfg.Title, DefaultConfig().Title)),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
	)
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithPixelRatio(win.PixelRatio()),
	)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Printf("[Medusa] particle seed %d", seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	cam := NewCamera(cfg, win.Width(), win.Height())
	state := NewDebugState()
	s, err := BuildScene(cfg, state, cam, r, rng)
	if err != nil {
		return err
	}

	resize := NewResizeHandler(cam, r, s.ParticleMaterial)
	resize.Handle(win.Width(), win.Height(), win.PixelRatio())

	panel := debug.NewPanel(debug.WithWidth(cfg.PanelWidth))
	if err := panel.Add(Bindings(s, state, r)...); err != nil {
		return fmt.Errorf("debug panel: %w", err)
	}

	var scheduler engine.FrameScheduler = engine.NewWindowScheduler(win)
	if cfg.FPS > 0 {
		scheduler = engine.NewTickerScheduler(cfg.FPS, scheduler)
	}
	loop := NewLoop(s)
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScheduler(scheduler),
		engine.WithScene(0, s),
		engine.WithTickCallback(loop.Tick),
		engine.WithProfiling(cfg.Profile),
	)
	eng.SetResizeCallback(resize.Handle)

	input := NewOrbitInput(cam, win.Height)
	win.SetMouseDownCallback(input.MouseDown)
	win.SetMouseUpCallback(input.MouseUp)
	win.SetMouseMoveCallback(input.MouseMove)
	win.SetScrollCallback(input.Scroll)
	win.SetKeyDownCallback(panel.KeyDown)
	win.SetKeyUpCallback(panel.KeyUp)

	if cfg.Console {
		console := debug.NewConsole(panel, eng.Post, os.Stdout)
		go func() {
			if err := console.Run(ctx, os.Stdin); err != nil {
				log.Printf("[Console] stopped: %v", err)
			}
		}()
	}

	return eng.Run(ctx)
}
