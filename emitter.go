package triparticles

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidConfig = errors.New("invalid emitter config")

// EmitterConfig controls emission. It is constant for a run.
type EmitterConfig struct {
	BatchSize int `mapstructure:"batch_size" toml:"batch_size"` // particles per emission
	Period    int `mapstructure:"period" toml:"period"`         // ticks between emissions
	Lifetime  int `mapstructure:"lifetime" toml:"lifetime"`     // ticks

	SpawnMin mgl32.Vec3 `mapstructure:"spawn_min" toml:"spawn_min"`
	SpawnMax mgl32.Vec3 `mapstructure:"spawn_max" toml:"spawn_max"`
	SizeMin  float32    `mapstructure:"size_min" toml:"size_min"`   // per-axis vertex offset
	SizeMax  float32    `mapstructure:"size_max" toml:"size_max"`
	SpeedMin float32    `mapstructure:"speed_min" toml:"speed_min"` // vertical, units per tick
	SpeedMax float32    `mapstructure:"speed_max" toml:"speed_max"`

	MaxParticles int `mapstructure:"max_particles" toml:"max_particles"` // soft cap, 0 = unbounded
}

func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		BatchSize: 5,
		Period:    2,
		Lifetime:  60,
		SpawnMin:  mgl32.Vec3{-3, 2, 0},
		SpawnMax:  mgl32.Vec3{2, 2, 0},
		SizeMin:   0.3,
		SizeMax:   0.8,
		SpeedMin:  -0.03,
		SpeedMax:  -0.001,
	}
}

func (c EmitterConfig) Validate() error {
	switch {
	case c.BatchSize < 0:
		return fmt.Errorf("%w: batch size %d is negative", ErrInvalidConfig, c.BatchSize)
	case c.Period <= 0:
		return fmt.Errorf("%w: period %d must be positive", ErrInvalidConfig, c.Period)
	case c.Lifetime < 0:
		return fmt.Errorf("%w: lifetime %d is negative", ErrInvalidConfig, c.Lifetime)
	case c.MaxParticles < 0:
		return fmt.Errorf("%w: max particles %d is negative", ErrInvalidConfig, c.MaxParticles)
	case c.SizeMin > c.SizeMax:
		return fmt.Errorf("%w: size range [%g, %g] is inverted", ErrInvalidConfig, c.SizeMin, c.SizeMax)
	case c.SpeedMin > c.SpeedMax:
		return fmt.Errorf("%w: speed range [%g, %g] is inverted", ErrInvalidConfig, c.SpeedMin, c.SpeedMax)
	}
	for axis := 0; axis < 3; axis++ {
		if c.SpawnMin[axis] > c.SpawnMax[axis] {
			return fmt.Errorf("%w: spawn volume axis %d [%g, %g] is inverted",
				ErrInvalidConfig, axis, c.SpawnMin[axis], c.SpawnMax[axis])
		}
	}
	return nil
}

// Sampler produces uniform values over [low, high].
type Sampler interface {
	Range(low, high float32) float32
}

type randSampler struct {
	r *rand.Rand
}

// NewRandSampler returns a math/rand backed Sampler. A zero seed uses the clock.
func NewRandSampler(seed int64) Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randSampler{r: rand.New(rand.NewSource(seed))}
}

func (s *randSampler) Range(low, high float32) float32 {
	return low + s.r.Float32()*(high-low)
}

func sampleVec3(rng Sampler, min, max mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		rng.Range(min[0], max[0]),
		rng.Range(min[1], max[1]),
		rng.Range(min[2], max[2]),
	}
}

// Spawn overwrites every field of p with a freshly sampled configuration.
// p may hold stale values from a previous life.
func Spawn(p *Particle, cfg EmitterConfig, rng Sampler) {
	p.Position = sampleVec3(rng, cfg.SpawnMin, cfg.SpawnMax)

	lo := mgl32.Vec3{cfg.SizeMin, cfg.SizeMin, cfg.SizeMin}
	hi := mgl32.Vec3{cfg.SizeMax, cfg.SizeMax, cfg.SizeMax}
	for i := range p.Offsets {
		p.Offsets[i] = sampleVec3(rng, lo, hi)
	}

	p.Velocity = mgl32.Vec3{0, rng.Range(cfg.SpeedMin, cfg.SpeedMax), 0}
	p.Lifetime = cfg.Lifetime
}
