/*
Package worker provides a bounded worker pool for concurrent task processing
with rate limiting and context cancellation support.

Basic usage:

	pool, _ := worker.NewPool(worker.Config{Workers: 4})

	ctx := context.Background()
	pool.Start(ctx)

	pool.Submit(worker.Task{
		ID: 1,
		Execute: func(ctx context.Context) (worker.Result, error) {
			return worker.Result{ID: 1, Data: "processed"}, nil
		},
	})

	results, err := pool.Wait()
*/
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/time/rate"
)

// Pool defines the interface for a worker pool.
type Pool interface {
	// Start initializes and starts the worker pool
	Start(context.Context) error

	// Submit adds a task to the pool for processing
	Submit(Task) error

	// Wait blocks until all submitted tasks are processed and returns
	// the results in submission order, or the first task error
	Wait() ([]Result, error)

	// Stop shuts down the pool
	Stop() error
}

type pool struct {
	config  Config
	tasks   chan taskWithOrder
	results chan Result
	errs    chan error
	limiter *rate.Limiter
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	started   bool
	draining  bool
	taskOrder int
}

type taskWithOrder struct {
	Task
	order int
}

// NewPool creates a new worker pool with the given configuration.
func NewPool(config Config) (Pool, error) {
	if config.Workers <= 0 {
		return nil, fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must be non-negative")
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &pool{
		config:  config,
		tasks:   make(chan taskWithOrder, config.Workers*2),
		results: make(chan Result, config.Workers*2),
		errs:    make(chan error, config.Workers),
		limiter: limiter,
	}, nil
}

// Start launches the configured number of workers.
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return nil
}

// Submit adds a task to the pool for processing.
func (p *pool) Submit(task Task) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return fmt.Errorf("pool not started")
	}
	if p.draining {
		p.mu.Unlock()
		return fmt.Errorf("pool is draining")
	}
	order := p.taskOrder
	p.taskOrder++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", p.ctx.Err())
	case p.tasks <- taskWithOrder{task, order}:
		return nil
	}
}

// Wait closes the task stream, waits for the workers to finish, and returns
// all collected results sorted by submission order.
func (p *pool) Wait() ([]Result, error) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool not started")
	}
	if !p.draining {
		p.draining = true
		close(p.tasks)
	}
	p.mu.Unlock()

	// Drain results concurrently so workers never block on a full channel.
	var results []Result
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range p.results {
			results = append(results, result)
		}
	}()

	p.wg.Wait()
	close(p.results)
	<-collected

	sort.Slice(results, func(i, j int) bool {
		return results[i].order < results[j].order
	})

	select {
	case err := <-p.errs:
		return nil, err
	default:
		return results, nil
	}
}

// Stop cancels the pool context. Safe to call after Wait.
func (p *pool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}
	p.cancel()

	return nil
}

func (p *pool) worker() {
	defer p.wg.Done()

	for next := range p.tasks {
		if p.limiter != nil {
			if err := p.limiter.Wait(p.ctx); err != nil {
				select {
				case p.errs <- fmt.Errorf("rate limiter error: %w", err):
				default:
				}
				return
			}
		}

		result, err := next.Execute(p.ctx)
		if err != nil {
			select {
			case p.errs <- fmt.Errorf("task %d failed: %w", next.ID, err):
			default:
				// Error channel is full, continue processing
			}
			continue
		}
		result.order = next.order

		select {
		case <-p.ctx.Done():
			return
		case p.results <- result:
		}
	}
}
