package invoice2pdf

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// GeneratorPool hands out Generators to concurrent callers, one caller per
// Generator at a time. Each Generator owns a browser, so they are built on
// demand, up to the pool size.
type GeneratorPool struct {
	size  int
	opts  []Option
	newFn func(...Option) (*Generator, error)
	idle  chan *Generator // buffered to size; closed by Close

	mu      sync.Mutex
	all     []*Generator
	created int
	closed  bool
}

// NewGeneratorPool creates a pool for up to n Generators built with opts.
// n below one is raised to one.
func NewGeneratorPool(n int, opts ...Option) *GeneratorPool {
	n = max(n, 1)
	return &GeneratorPool{
		size:  n,
		opts:  opts,
		newFn: NewGenerator,
		idle:  make(chan *Generator, n),
		all:   make([]*Generator, 0, n),
	}
}

// Acquire returns an idle Generator, builds a new one while the pool is
// below capacity, or waits for a Release until ctx is done.
func (p *GeneratorPool) Acquire(ctx context.Context) (*Generator, error) {
	if p.isClosed() {
		return nil, ErrPoolClosed
	}

	select {
	case g, open := <-p.idle:
		return p.handOut(g, open)
	default:
	}

	if g, grew, err := p.grow(); grew {
		return g, err
	}

	select {
	case g, open := <-p.idle:
		return p.handOut(g, open)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handOut refuses a Generator received while Close was running; Close
// shuts it down with the rest.
func (p *GeneratorPool) handOut(g *Generator, open bool) (*Generator, error) {
	if !open || p.isClosed() {
		return nil, ErrPoolClosed
	}
	return g, nil
}

func (p *GeneratorPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// grow builds one more Generator if capacity allows. It reports grew=false
// when the pool is full and the caller has to wait. A failed build frees
// its slot again.
func (p *GeneratorPool) grow() (g *Generator, grew bool, err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, true, ErrPoolClosed
	}
	if p.created >= p.size {
		p.mu.Unlock()
		return nil, false, nil
	}
	p.created++
	p.mu.Unlock()

	// Built unlocked: template compilation reads files.
	g, err = p.newFn(p.opts...)

	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case err != nil:
		p.created--
		return nil, true, err
	case p.closed:
		_ = g.Close()
		return nil, true, ErrPoolClosed
	}
	p.all = append(p.all, g)
	return g, true, nil
}

// Release puts g back for the next Acquire. Releasing nil, or after Close,
// does nothing. The send is made under the lock so it cannot race with
// Close, and never blocks since idle has room for every Generator built.
func (p *GeneratorPool) Release(g *Generator) {
	if g == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.idle <- g
	}
}

// Do acquires a Generator, runs fn with it and releases it, whatever fn returns.
func (p *GeneratorPool) Do(ctx context.Context, fn func(*Generator) error) error {
	g, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(g)
	return fn(g)
}

// Close shuts down every Generator the pool built, joining their errors.
// Later calls return nil.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	// Drain before closing: a closed channel still yields buffered values.
drain:
	for {
		select {
		case <-p.idle:
		default:
			break drain
		}
	}
	close(p.idle)
	built := p.all
	p.mu.Unlock()

	var errs []error
	for _, g := range built {
		if err := g.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive. Otherwise it derives a
// size from GOMAXPROCS (container-aware once automaxprocs has run),
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
