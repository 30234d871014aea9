// Package parallel provides a fixed-size worker pool and fork-join task
// groups with first-error propagation.
package parallel

import (
	"runtime"
	"sync"
)

// Pool is a fixed set of workers draining a shared work queue. One pool is
// typically shared by every traversal in a process.
type Pool struct {
	work chan func()
	wg   sync.WaitGroup
	stop func()
}

// Start launches a pool of numWorkers workers. A count below 1 selects
// GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		work: make(chan func(), numWorkers),
	}
	p.stop = sync.OnceFunc(func() { close(p.work) })

	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range p.work {
				f()
			}
		}()
	}

	return p
}

// Close stops accepting work and blocks until the workers drain the queue.
// Groups must be joined before their pool is closed.
func (p *Pool) Close() {
	p.stop()
	p.wg.Wait()
}

// Group tracks a set of forked tasks and the first error any of them
// returned. Tasks may fork further tasks into the same group.
type Group struct {
	pool *Pool
	wg   sync.WaitGroup
	once sync.Once
	err  error
}

func (p *Pool) Group() *Group {
	return &Group{pool: p}
}

// Fork schedules f on a pool worker, or runs it inline when every worker is
// busy. Running inline keeps recursive forks from deadlocking on a full
// queue: a task never blocks waiting for a worker.
func (g *Group) Fork(f func() error) {
	g.wg.Add(1)
	task := func() {
		defer g.wg.Done()
		g.Report(f())
	}

	select {
	case g.pool.work <- task:
	default:
		task()
	}
}

// Report captures err as the group's result unless an earlier failure was
// already captured. A nil err is ignored.
func (g *Group) Report(err error) {
	if err == nil {
		return
	}
	g.once.Do(func() { g.err = err })
}

// Join blocks until every forked task has completed, then returns the first
// captured failure, if any.
func (g *Group) Join() error {
	g.wg.Wait()
	return g.err
}
