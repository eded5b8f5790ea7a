package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/medusa/internal/medusa"
)

// GLFW calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := medusa.DefaultConfig()

	flag.IntVar(&cfg.Width, "width", cfg.Width, "initial window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "initial window height")
	flag.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	flag.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "wait for vertical blank before presenting")
	flag.Float64Var(&cfg.FPS, "fps", cfg.FPS, "frame cap, 0 paces frames by the display")
	flag.IntVar(&cfg.MSAA, "msaa", cfg.MSAA, "multisample count: 1, 4, 8 or 16")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "particle field seed, 0 picks one at random")
	flag.IntVar(&cfg.ParticleCount, "particles", cfg.ParticleCount, "number of particles")
	flag.BoolVar(&cfg.Profile, "profile", cfg.Profile, "log frame rate and memory statistics")
	flag.BoolVar(&cfg.Console, "console", cfg.Console, "read debug panel commands from stdin")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := medusa.Run(ctx, cfg); err != nil {
		log.Fatalf("[Medusa] %v", err)
	}
}
