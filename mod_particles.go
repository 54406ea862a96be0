package triparticles

import "fmt"

// ParticleModule installs the Simulation and Frame resources and steps the
// simulation once per tick in the Update stage.
type ParticleModule struct {
	Config EmitterConfig
	Seed   int64 // 0 seeds from the clock
}

func (mod ParticleModule) Install(app *App, cmd *Commands) {
	log := app.Logger()
	sim, err := NewSimulation(mod.Config, NewRandSampler(mod.Seed), log)
	if err != nil {
		panic(fmt.Sprintf("ParticleModule: %v", err))
	}

	cmd.AddResources(sim, &Frame{})
	cmd.UseSystem(System(particleSystem).InStage(Update))

	log.Infof("particles: batch %d every %d ticks, lifetime %d, cap %d",
		mod.Config.BatchSize, mod.Config.Period, mod.Config.Lifetime, mod.Config.MaxParticles)
}

func particleSystem(sim *Simulation, frame *Frame) {
	frame.Reset()
	frame.Stats = sim.Step(frame)
}
