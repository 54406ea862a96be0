package triparticles

import "fmt"

// poolChunkSize is the number of values stored per arena chunk.
const poolChunkSize = 256

// Pool is a recycling container for values of type T.
//
// Slots are split at Len() into a live prefix [0, Len()) and a dead suffix
// [Len(), Allocated()). Values are stored in fixed-size chunks that never move,
// so a *T handed out by Acquire stays valid for the lifetime of the pool.
// Removal swaps the removed slot with the last live one, which means removing
// index i during a forward scan puts a different value at i: re-examine i
// instead of advancing.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	chunks [][]T
	slots  []*T
	live   int
	limit  int
}

func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Acquire returns a live slot, reusing the first dead one when available.
// A reused value keeps whatever fields it had when it was marked dead; the
// caller must initialise every field. Acquire ignores the soft limit.
func (p *Pool[T]) Acquire() *T {
	if p.live < len(p.slots) {
		v := p.slots[p.live]
		p.live++
		return v
	}

	v := p.construct()
	p.slots = append(p.slots, v)
	p.live++
	return v
}

// TryAcquire is Acquire bounded by the soft limit.
func (p *Pool[T]) TryAcquire() (*T, bool) {
	if p.limit > 0 && p.live >= p.limit {
		return nil, false
	}
	return p.Acquire(), true
}

// MarkDead moves the live value at index into the dead suffix. The value
// previously at Len()-1 now occupies index.
func (p *Pool[T]) MarkDead(index int) {
	p.checkLive(index)

	last := p.live - 1
	p.slots[index], p.slots[last] = p.slots[last], p.slots[index]
	p.live = last
}

// At returns the live value at index. The pool keeps ownership.
func (p *Pool[T]) At(index int) *T {
	p.checkLive(index)
	return p.slots[index]
}

// Len returns the number of live values.
func (p *Pool[T]) Len() int { return p.live }

// Allocated returns the number of values ever constructed. It never decreases.
func (p *Pool[T]) Allocated() int { return len(p.slots) }

// Limit returns the soft cap on live values; 0 means unbounded.
func (p *Pool[T]) Limit() int { return p.limit }

// SetLimit sets the soft cap honoured by TryAcquire. Lowering it below Len()
// does not kill anything; it only stops further acquisitions.
func (p *Pool[T]) SetLimit(n int) {
	if n < 0 {
		panic(fmt.Sprintf("pool: negative limit %d", n))
	}
	p.limit = n
}

// Clear marks every live value dead. Storage is retained.
func (p *Pool[T]) Clear() { p.live = 0 }

func (p *Pool[T]) construct() *T {
	n := len(p.chunks)
	if n == 0 || len(p.chunks[n-1]) == cap(p.chunks[n-1]) {
		p.chunks = append(p.chunks, make([]T, 0, poolChunkSize))
		n++
	}
	chunk := p.chunks[n-1]
	var zero T
	chunk = append(chunk, zero)
	p.chunks[n-1] = chunk
	return &chunk[len(chunk)-1]
}

func (p *Pool[T]) checkLive(index int) {
	if index < 0 || index >= p.live {
		panic(fmt.Sprintf("pool: index %d out of live range [0, %d)", index, p.live))
	}
}
