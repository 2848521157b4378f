package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Do once the pool has been stopped.
var ErrStopped = errors.New("worker pool stopped")

// Task represents a unit of work executed by the pool.
type Task func(ctx context.Context) error

// Pool bounds how many tasks run at the same time.
type Pool interface {
	// Do queues t and blocks until it has run or ctx is done.
	Do(ctx context.Context, t Task) error
	Stop()
}

type job struct {
	ctx  context.Context
	task Task
	done chan error
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan job), quit: make(chan struct{})}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j.done <- j.run()
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan job
	quit chan struct{}
	once sync.Once
	mu   sync.RWMutex
	wg   sync.WaitGroup
}

func (j job) run() error {
	// the caller may have given up while the job was queued
	if err := j.ctx.Err(); err != nil {
		return err
	}
	if j.task == nil {
		return nil
	}
	return j.task(j.ctx)
}

func (p *pool) Do(ctx context.Context, t Task) error {
	j := job{ctx: ctx, task: t, done: make(chan error, 1)}

	p.mu.RLock()
	select {
	case <-p.quit:
		p.mu.RUnlock()
		return ErrStopped
	default:
	}
	select {
	case p.jobs <- j:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pool) Stop() {
	p.once.Do(func() {
		close(p.quit)
		// wait for in-flight Do calls to stop sending before closing jobs
		p.mu.Lock()
		close(p.jobs)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
