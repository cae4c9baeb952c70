package flight

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Cache memoizes the result of work per key for a TTL and coalesces
// concurrent misses for the same key into a single call.
type Cache[K comparable, V any] struct {
	finished map[K]*entry[V]
	fmu      *sync.RWMutex

	pending map[K]*job[V]
	pmu     *sync.Mutex

	work func(context.Context, K) (V, error)

	// ttl in nanoseconds; <= 0 never expires.
	ttl *atomic.Int64
	now func() time.Time
}

type entry[V any] struct {
	val      V
	deadline time.Time // zero => never
}

type job[V any] struct {
	val  V
	err  error
	done chan struct{}
}

func NewCache[K comparable, V any](work func(context.Context, K) (V, error)) Cache[K, V] {
	var ttl atomic.Int64
	ttl.Store(int64(time.Minute))
	return Cache[K, V]{
		finished: make(map[K]*entry[V]),
		fmu:      new(sync.RWMutex),
		pending:  make(map[K]*job[V]),
		pmu:      new(sync.Mutex),
		work:     work,
		ttl:      &ttl,
		now:      time.Now,
	}
}

// Expiry sets how long future results stay cached.
// d <= 0 caches them until Forget is called.
func (p *Cache[K, V]) Expiry(d time.Duration) {
	if d <= 0 {
		p.ttl.Store(0)
		return
	}
	p.ttl.Store(int64(d))
}

// Get returns the cached value for k, running work on a miss. Callers
// that arrive while work is running wait for it (or for ctx).
func (p *Cache[K, V]) Get(ctx context.Context, k K) (V, error) {
	if v, ok := p.load(k); ok {
		return v, nil
	}

	p.pmu.Lock()
	// Another caller may have stored while we waited for the lock.
	if v, ok := p.load(k); ok {
		p.pmu.Unlock()
		return v, nil
	}
	if j, ok := p.pending[k]; ok {
		p.pmu.Unlock()
		return p.wait(ctx, j)
	}
	j := &job[V]{done: make(chan struct{})}
	p.pending[k] = j
	p.pmu.Unlock()

	p.run(ctx, k, j)
	return j.val, j.err
}

// Forget drops the cached value for k so the next Get reloads it.
func (p *Cache[K, V]) Forget(k K) {
	p.fmu.Lock()
	delete(p.finished, k)
	p.fmu.Unlock()
}

func (p *Cache[K, V]) wait(ctx context.Context, j *job[V]) (V, error) {
	select {
	case <-j.done:
		return j.val, j.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

func (p *Cache[K, V]) run(ctx context.Context, k K, j *job[V]) {
	j.val, j.err = p.work(ctx, k)
	if j.err == nil {
		p.store(k, j.val)
	}

	p.pmu.Lock()
	close(j.done)
	delete(p.pending, k)
	p.pmu.Unlock()
}

func (p *Cache[K, V]) load(k K) (V, bool) {
	p.fmu.RLock()
	e, ok := p.finished[k]
	p.fmu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if !e.deadline.IsZero() && p.now().After(e.deadline) {
		p.fmu.Lock()
		if cur, ok := p.finished[k]; ok && cur == e {
			delete(p.finished, k)
		}
		p.fmu.Unlock()
		var zero V
		return zero, false
	}
	return e.val, true
}

func (p *Cache[K, V]) store(k K, val V) {
	e := &entry[V]{val: val}
	if d := time.Duration(p.ttl.Load()); d > 0 {
		e.deadline = p.now().Add(d)
	}
	p.fmu.Lock()
	p.finished[k] = e
	p.fmu.Unlock()
}
