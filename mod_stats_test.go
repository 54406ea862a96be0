package triparticles

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestStats_ReportsEveryN(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)
	sim := newTestSimulation(t, quietConfig())
	sim.Burst(3)

	clock := time.Unix(1000, 0)
	st := &Stats{
		RunID: uuid.New(),
		Every: 10,
		log:   log,
		now:   func() time.Time { return clock },
	}

	for i := 0; i < 20; i++ {
		sim.Step(nil)
		clock = clock.Add(100 * time.Millisecond)
		statsSystem(st, sim)
	}

	require.Equal(t, 2, st.Reports)
	assert.Equal(t, uint64(20), st.Last.Tick)
	assert.Equal(t, 3, st.Last.Live)
	assert.Equal(t, uint64(3), st.Last.Emitted)
	assert.InDelta(t, 10, st.Last.TPS, 1e-9)
	assert.Zero(t, st.Last.RSS, "no process handle, no RSS")
	assert.Equal(t, 2, logs.Len())
}

func TestStatsModule_Defaults(t *testing.T) {
	app := NewApp()
	app.UseModules(ParticleModule{Config: DefaultEmitterConfig(), Seed: 9}, StatsModule{})

	st, ok := Resource[Stats](app)
	require.True(t, ok)
	assert.Equal(t, uint64(defaultStatsEvery), st.Every)
	assert.NotEqual(t, uuid.Nil, st.RunID)
}
