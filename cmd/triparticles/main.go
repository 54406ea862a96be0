// Command triparticles runs the falling-triangle particle simulation in a
// terminal, a window, or headless.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gekko3d/triparticles"
	"github.com/gekko3d/triparticles/config"
	"github.com/gekko3d/triparticles/render/term"
	"github.com/gekko3d/triparticles/render/window"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if cfg.DumpConfig {
		return config.WriteTOML(os.Stdout, cfg)
	}

	mode, err := triparticles.ParseRendererName(cfg.Render.Mode)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	builder := triparticles.NewAppBuilder()
	if log != nil {
		builder.UseModule(triparticles.LoggingModule{Logger: log})
		defer log.Sync()
	}
	builder.UseModule(
		triparticles.TickModule{Interval: cfg.Loop.Interval},
		triparticles.ParticleModule{Config: cfg.Emitter, Seed: cfg.Loop.Seed},
	)
	if cfg.Stats.Every > 0 {
		builder.UseModule(triparticles.StatsModule{Every: cfg.Stats.Every})
	}
	app := builder.Build()

	var sched triparticles.Scheduler = triparticles.TickerScheduler{
		Interval: cfg.Loop.Interval,
		MaxTicks: cfg.Loop.MaxTicks,
	}
	switch mode {
	case triparticles.RendererHeadless:
		app.UseRenderer(mode, nil)
	case triparticles.RendererTerminal:
		screen, err := term.NewScreen()
		if err != nil {
			return err
		}
		app.UseRenderer(mode, term.Module{Screen: screen})
	case triparticles.RendererWindow:
		app.UseRenderer(mode, window.Module{
			Width:  cfg.Render.Width,
			Height: cfg.Render.Height,
			Title:  cfg.Render.Title,
		})
		sched = window.Scheduler{TPS: cfg.TPS(), MaxTicks: cfg.Loop.MaxTicks}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sched.Run(ctx, app); err != nil {
		return err
	}

	if sim, ok := triparticles.Resource[triparticles.Simulation](app); ok {
		t := sim.Totals()
		app.Logger().Infof("done after %d ticks: emitted %d, retired %d, dropped %d, %d live",
			sim.Tick(), t.Emitted, t.Retired, t.Dropped, sim.Len())
	}
	return nil
}

// newLogger returns nil when nothing should be logged: the terminal renderer
// owns stdout, so it only logs to an explicit file.
func newLogger(cfg *config.Config, mode triparticles.RendererName) (*triparticles.DefaultLogger, error) {
	output := cfg.Logging.File
	if output == "" {
		if mode == triparticles.RendererTerminal {
			return nil, nil
		}
		output = "stderr"
	}
	return triparticles.NewDefaultLogger(triparticles.LogOptions{
		Prefix: "triparticles",
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: output,
	})
}
