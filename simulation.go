package triparticles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer receives one call per surviving particle per tick.
type Renderer interface {
	DrawTriangle(vertices [3]mgl32.Vec3, normal mgl32.Vec3)
}

// StepStats describes a single tick.
type StepStats struct {
	Tick      uint64
	Emitted   int
	Dropped   int // emissions refused by the soft cap
	Retired   int
	Drawn     int
	Live      int
	Allocated int
}

// Totals accumulates StepStats over the life of a Simulation.
type Totals struct {
	Emitted uint64
	Dropped uint64
	Retired uint64
}

// Simulation owns the particle pool and advances it one fixed tick at a time.
type Simulation struct {
	cfg  EmitterConfig
	rng  Sampler
	log  Logger
	pool *Pool[Particle]

	tick      uint64
	totals    Totals
	saturated bool
}

func NewSimulation(cfg EmitterConfig, rng Sampler, log Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil sampler", ErrInvalidConfig)
	}
	if log == nil {
		log = NewNopLogger()
	}

	pool := NewPool[Particle]()
	pool.SetLimit(cfg.MaxParticles)

	return &Simulation{
		cfg:  cfg,
		rng:  rng,
		log:  log,
		pool: pool,
	}, nil
}

// Step advances the whole population by one tick: emission, then
// update-and-cull, drawing every survivor into r. r may be nil.
func (s *Simulation) Step(r Renderer) StepStats {
	s.tick++
	stats := StepStats{Tick: s.tick}

	if s.tick%uint64(s.cfg.Period) == 0 {
		stats.Emitted, stats.Dropped = s.emit(s.cfg.BatchSize)
	}

	for i := 0; i < s.pool.Len(); {
		p := s.pool.At(i)
		p.Advance()

		if p.Expired() {
			// The last live particle now sits at i; look at it next.
			s.pool.MarkDead(i)
			stats.Retired++
			continue
		}

		if r != nil {
			r.DrawTriangle(p.Vertices(), p.Normal())
		}
		stats.Drawn++
		i++
	}

	stats.Live = s.pool.Len()
	stats.Allocated = s.pool.Allocated()
	s.totals.Retired += uint64(stats.Retired)
	return stats
}

// Burst emits up to n particles immediately and returns how many were spawned.
func (s *Simulation) Burst(n int) int {
	emitted, _ := s.emit(n)
	return emitted
}

// SpawnWith acquires one slot and hands it to init, which must set every
// field. It reports false when the soft cap is reached.
func (s *Simulation) SpawnWith(init func(p *Particle)) bool {
	p, ok := s.pool.TryAcquire()
	if !ok {
		return false
	}
	init(p)
	s.totals.Emitted++
	return true
}

// Reset retires every live particle. Storage and the tick counter are kept.
func (s *Simulation) Reset() {
	retired := s.pool.Len()
	s.pool.Clear()
	s.totals.Retired += uint64(retired)
	s.saturated = false
	s.log.Debugf("simulation reset at tick %d, %d particles retired", s.tick, retired)
}

func (s *Simulation) emit(n int) (emitted, dropped int) {
	for i := 0; i < n; i++ {
		p, ok := s.pool.TryAcquire()
		if !ok {
			dropped = n - i
			break
		}
		Spawn(p, s.cfg, s.rng)
		emitted++
	}

	s.totals.Emitted += uint64(emitted)
	s.totals.Dropped += uint64(dropped)

	if dropped > 0 && !s.saturated {
		s.saturated = true
		s.log.Warnf("particle cap %d reached at tick %d, dropping emissions", s.pool.Limit(), s.tick)
	} else if dropped == 0 && s.saturated {
		s.saturated = false
		s.log.Debugf("particle count back under cap at tick %d", s.tick)
	}
	return emitted, dropped
}

func (s *Simulation) Len() int              { return s.pool.Len() }
func (s *Simulation) Allocated() int        { return s.pool.Allocated() }
func (s *Simulation) Tick() uint64          { return s.tick }
func (s *Simulation) Totals() Totals        { return s.totals }
func (s *Simulation) Config() EmitterConfig { return s.cfg }

// Particle returns the live particle at index i; see Pool.At.
func (s *Simulation) Particle(i int) *Particle { return s.pool.At(i) }
