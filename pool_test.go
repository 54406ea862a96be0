package triparticles

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	n    int
}

func livePool(names ...string) (*Pool[item], []*item) {
	p := NewPool[item]()
	out := make([]*item, 0, len(names))
	for _, n := range names {
		it := p.Acquire()
		it.name = n
		out = append(out, it)
	}
	return p, out
}

func liveNames(p *Pool[item]) []string {
	names := make([]string, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		names = append(names, p.At(i).name)
	}
	return names
}

func TestPool_AcquireGrows(t *testing.T) {
	p := NewPool[item]()
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Allocated())

	a := p.Acquire()
	require.NotNil(t, a)
	assert.Equal(t, item{}, *a, "fresh values are zero")
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 1, p.Allocated())
}

func TestPool_SwapOnMarkDead(t *testing.T) {
	p, _ := livePool("A", "B", "C", "D")

	p.MarkDead(1)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 4, p.Allocated())
	assert.Equal(t, []string{"A", "D", "C"}, liveNames(p))
}

func TestPool_MarkDeadLast(t *testing.T) {
	p, _ := livePool("A", "B")
	p.MarkDead(1)
	assert.Equal(t, []string{"A"}, liveNames(p))
	p.MarkDead(0)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 2, p.Allocated())
}

func TestPool_ReusesBeforeGrowing(t *testing.T) {
	p, items := livePool("A", "B", "C")

	p.MarkDead(0)
	reused := p.Acquire()

	assert.Same(t, items[0], reused, "the most recently retired value comes back first")
	assert.Equal(t, "A", reused.name, "the pool does not reset fields")
	assert.Equal(t, 3, p.Allocated())
	assert.Equal(t, 3, p.Len())
}

func TestPool_PointersSurviveGrowth(t *testing.T) {
	p := NewPool[item]()
	first := p.Acquire()
	first.n = 42

	for i := 0; i < poolChunkSize*3; i++ {
		p.Acquire().n = i
	}

	assert.Same(t, first, p.At(0))
	assert.Equal(t, 42, first.n)
}

func TestPool_InvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := NewPool[item]()
	prevAllocated := 0

	for step := 0; step < 5000; step++ {
		if p.Len() > 0 && rng.Intn(3) == 0 {
			p.MarkDead(rng.Intn(p.Len()))
		} else {
			p.Acquire()
		}

		require.GreaterOrEqual(t, p.Len(), 0)
		require.LessOrEqual(t, p.Len(), p.Allocated())
		require.GreaterOrEqual(t, p.Allocated(), prevAllocated, "allocated must never shrink")
		prevAllocated = p.Allocated()
	}
}

func TestPool_LiveValuesAreDistinct(t *testing.T) {
	p, _ := livePool("A", "B", "C", "D", "E")
	p.MarkDead(2)
	p.MarkDead(0)
	p.Acquire().name = "F"

	seen := map[*item]bool{}
	for i := 0; i < p.Len(); i++ {
		v := p.At(i)
		assert.False(t, seen[v], "slot %d aliases another live slot", i)
		seen[v] = true
	}
	assert.ElementsMatch(t, []string{"B", "D", "E", "F"}, liveNames(p))
}

func TestPool_TryAcquireHonoursLimit(t *testing.T) {
	p := NewPool[item]()
	p.SetLimit(2)

	_, ok := p.TryAcquire()
	require.True(t, ok)
	_, ok = p.TryAcquire()
	require.True(t, ok)
	v, ok := p.TryAcquire()
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 2, p.Len())

	p.MarkDead(0)
	_, ok = p.TryAcquire()
	assert.True(t, ok, "a freed slot makes room under the limit")

	p.SetLimit(0)
	_, ok = p.TryAcquire()
	assert.True(t, ok, "0 lifts the limit")
}

func TestPool_Clear(t *testing.T) {
	p, items := livePool("A", "B", "C")
	p.Clear()

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 3, p.Allocated())
	assert.Same(t, items[0], p.Acquire())
}

func TestPool_ContractViolationsPanic(t *testing.T) {
	p, _ := livePool("A", "B")
	p.MarkDead(1)

	require.PanicsWithValue(t, "pool: index 1 out of live range [0, 1)", func() {
		p.At(1)
	}, "dead slots are not addressable")
	require.PanicsWithValue(t, "pool: index -1 out of live range [0, 1)", func() {
		p.MarkDead(-1)
	})
	require.PanicsWithValue(t, "pool: index 5 out of live range [0, 1)", func() {
		p.MarkDead(5)
	})
	require.PanicsWithValue(t, "pool: negative limit -3", func() {
		p.SetLimit(-3)
	})
}
