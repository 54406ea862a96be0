package triparticles

import "github.com/go-gl/mathgl/mgl32"

// Particle is a triangle anchored at Position. Offsets hold vertex 1, 2 and 3
// relative to the anchor; their order sets the winding and never changes.
type Particle struct {
	Position mgl32.Vec3
	Offsets  [3]mgl32.Vec3
	Velocity mgl32.Vec3
	Lifetime int
}

// Advance moves the particle one tick: a single unit Euler step with constant
// velocity, then one tick off its remaining lifetime.
func (p *Particle) Advance() {
	p.Position = p.Position.Add(p.Velocity)
	p.Lifetime--
}

// Expired reports whether the lifetime has dropped below zero. A particle
// spawned with lifetime N is therefore alive for N+1 ticks.
func (p *Particle) Expired() bool {
	return p.Lifetime < 0
}

// Vertices returns the world-space vertices in winding order.
func (p *Particle) Vertices() [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		p.Position.Add(p.Offsets[0]),
		p.Position.Add(p.Offsets[1]),
		p.Position.Add(p.Offsets[2]),
	}
}

// Normal is (v2-v1) x (v3-v1). It is not normalised.
func (p *Particle) Normal() mgl32.Vec3 {
	return triangleNormal(p.Vertices())
}

func triangleNormal(v [3]mgl32.Vec3) mgl32.Vec3 {
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
}
