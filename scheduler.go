package triparticles

import (
	"context"
	"time"
)

// DefaultTickInterval is the nominal cadence, roughly 58 ticks per second.
const DefaultTickInterval = 17 * time.Millisecond

// Scheduler drives App.Tick until it decides to stop. Implementations must
// call App.Shutdown before returning and must never overlap ticks.
type Scheduler interface {
	Run(ctx context.Context, app *App) error
}

// TickerScheduler ticks the app from a time.Ticker.
type TickerScheduler struct {
	Interval time.Duration
	MaxTicks uint64 // 0 runs until cancelled or an exit is requested
}

func (s TickerScheduler) Run(ctx context.Context, app *App) error {
	defer app.Shutdown()

	interval := s.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := app.Logger()
	log.Infof("tick loop started (interval %s)", interval)

	for {
		select {
		case <-ctx.Done():
			log.Infof("tick loop stopped after %d ticks: %v", app.Ticks(), ctx.Err())
			return nil
		case <-ticker.C:
			app.Tick()
			if app.ExitRequested() {
				log.Infof("tick loop exit requested after %d ticks", app.Ticks())
				return nil
			}
			if s.MaxTicks > 0 && app.Ticks() >= s.MaxTicks {
				log.Infof("tick loop reached %d ticks", app.Ticks())
				return nil
			}
		}
	}
}
