package triparticles

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/process"
)

const defaultStatsEvery = 300

// StatsSnapshot is a periodic summary of the particle population.
type StatsSnapshot struct {
	Tick      uint64
	Live      int
	Allocated int
	Emitted   uint64
	Retired   uint64
	Dropped   uint64
	RSS       uint64 // bytes, 0 when unavailable
	TPS       float64
}

type Stats struct {
	RunID   uuid.UUID
	Every   uint64
	Last    StatsSnapshot
	Reports int

	proc      *process.Process
	log       Logger
	now       func() time.Time
	since     time.Time
	sinceTick uint64
}

// StatsModule reports pool usage and process memory every Every ticks.
// Requires ParticleModule.
type StatsModule struct {
	Every uint64
}

func (mod StatsModule) Install(app *App, cmd *Commands) {
	every := mod.Every
	if every == 0 {
		every = defaultStatsEvery
	}

	log := app.Logger()
	st := &Stats{
		RunID: uuid.New(),
		Every: every,
		log:   log,
		now:   time.Now,
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debugf("stats: process handle unavailable: %v", err)
	} else {
		st.proc = proc
	}

	cmd.AddResources(st)
	cmd.UseSystem(System(statsSystem).InStage(PostUpdate))
	log.Infof("stats: run %s, reporting every %d ticks", st.RunID, every)
}

func statsSystem(st *Stats, sim *Simulation) {
	if st.since.IsZero() {
		st.since = st.now()
		st.sinceTick = sim.Tick()
	}
	if sim.Tick()%st.Every != 0 {
		return
	}
	st.report(sim)
}

func (st *Stats) report(sim *Simulation) {
	now := st.now()
	totals := sim.Totals()
	snap := StatsSnapshot{
		Tick:      sim.Tick(),
		Live:      sim.Len(),
		Allocated: sim.Allocated(),
		Emitted:   totals.Emitted,
		Retired:   totals.Retired,
		Dropped:   totals.Dropped,
	}
	if elapsed := now.Sub(st.since).Seconds(); elapsed > 0 {
		snap.TPS = float64(snap.Tick-st.sinceTick) / elapsed
	}
	if st.proc != nil {
		if mem, err := st.proc.MemoryInfo(); err != nil {
			st.log.Debugf("stats: memory info: %v", err)
		} else {
			snap.RSS = mem.RSS
		}
	}

	st.Last = snap
	st.Reports++
	st.since = now
	st.sinceTick = snap.Tick

	st.log.Infof("run %s tick %d: live %d, allocated %d, emitted %d, retired %d, dropped %d, rss %.1f MiB, %.1f tps",
		st.RunID, snap.Tick, snap.Live, snap.Allocated, snap.Emitted, snap.Retired, snap.Dropped,
		float64(snap.RSS)/(1<<20), snap.TPS)
}
