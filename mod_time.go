package triparticles

import (
	"time"
)

// Tick tracks the scheduler's cadence. Simulated time is always one unit per
// tick; Lag is observed wall-clock drift and is never fed back.
type Tick struct {
	Count    uint64
	Interval time.Duration
	Last     time.Time
	Lag      time.Duration
}

type TickModule struct {
	Interval time.Duration
}

func (mod TickModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Tick{
		Interval: mod.Interval,
	})
	cmd.UseSystem(System(tickSystem).InStage(PreUpdate))
}

func tickSystem(tick *Tick) {
	now := time.Now()

	if !tick.Last.IsZero() && tick.Interval > 0 {
		tick.Lag = now.Sub(tick.Last) - tick.Interval
	}
	tick.Count++
	tick.Last = now
}
