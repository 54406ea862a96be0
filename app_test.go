package triparticles

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_addResourcesRejectsValues(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() { app.addResources(MockResource1{}) })
}

func TestApp_TickRunsStagesInOrder(t *testing.T) {
	app := NewApp()
	var calls []string
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}

	// Registered out of order on purpose.
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("finale")).InStage(Finale))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("pre")).InStage(PreUpdate))
	app.UseSystem(System(record("post")).InStage(PostUpdate))

	app.Tick()
	assert.Equal(t, []string{"pre", "update", "post", "render"}, calls)
	assert.Equal(t, uint64(1), app.Ticks())

	calls = nil
	app.Shutdown()
	app.Shutdown()
	assert.Equal(t, []string{"finale"}, calls, "Finale runs once, only on shutdown")

	assert.PanicsWithValue(t, "Tick called after Shutdown", app.Tick)
}

func TestApp_SystemInjection(t *testing.T) {
	app := NewApp()
	res := NewMockResource1("injected")
	app.addResources(res)

	var seen *MockResource1
	var gotCmd *Commands
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		seen = r
		gotCmd = cmd
	}))
	app.Tick()

	assert.Same(t, res, seen)
	require.NotNil(t, gotCmd)
	assert.Same(t, app, gotCmd.app)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource2) {}))
	assert.Panics(t, app.Tick)
}

func TestApp_UseStage(t *testing.T) {
	app := NewApp()
	physics := Stage{Name: "Physics"}
	app.UseStage(physics, AfterStage(Update))

	names := []string{}
	for _, s := range app.Stages() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"PreUpdate", "Update", "Physics", "PostUpdate", "Render", "Finale"}, names)

	ran := false
	app.UseSystem(System(func() { ran = true }).InStage(physics))
	app.Tick()
	assert.True(t, ran)

	require.PanicsWithValue(t, "Stage Missing not found", func() {
		app.UseStage(Stage{Name: "Late"}, BeforeStage(Stage{Name: "Missing"}))
	})
	require.PanicsWithValue(t, "Stage Physics already exists", func() {
		app.UseStage(physics, BeforeStage(Render))
	})
	require.PanicsWithValue(t, "Stage Nowhere doesn't exist", func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nowhere"}))
	})
}

func TestSystem_RejectsNonFunctions(t *testing.T) {
	assert.Panics(t, func() { System(42) })
}

func TestCommands_Exit(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(cmd *Commands) { cmd.Exit() }))
	assert.False(t, app.ExitRequested())
	app.Tick()
	assert.True(t, app.ExitRequested())
}

func TestApp_ParticleModules(t *testing.T) {
	cfg := DefaultEmitterConfig()
	cfg.Lifetime = 100

	app := NewAppBuilder().
		UseModule(TickModule{Interval: DefaultTickInterval}, ParticleModule{Config: cfg, Seed: 1}, StatsModule{Every: 2}).
		Build()

	for i := 0; i < 4; i++ {
		app.Tick()
	}

	tick, ok := Resource[Tick](app)
	require.True(t, ok)
	assert.Equal(t, uint64(4), tick.Count)

	frame, ok := Resource[Frame](app)
	require.True(t, ok)
	assert.Len(t, frame.Triangles, 10)
	assert.Equal(t, uint64(4), frame.Stats.Tick)
	assert.Equal(t, 10, frame.Stats.Live)

	stats, ok := Resource[Stats](app)
	require.True(t, ok)
	assert.Equal(t, 2, stats.Reports)
	assert.Equal(t, uint64(4), stats.Last.Tick)
	assert.Equal(t, 10, stats.Last.Live)
	assert.Equal(t, uint64(10), stats.Last.Emitted)
}

func TestParticleModule_PanicsOnInvalidConfig(t *testing.T) {
	cfg := DefaultEmitterConfig()
	cfg.Period = -1
	assert.Panics(t, func() {
		NewApp().UseModules(ParticleModule{Config: cfg})
	})
}
