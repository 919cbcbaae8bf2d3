package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/pkg/logger"
)

var ErrQueueFull = errors.New("worker queue full")
var ErrStopped = errors.New("worker pool stopped")

// Task is a named unit of background work. Failures are logged, not retried.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool runs non-critical side work on a fixed set of goroutines with a
// bounded queue, so callers get backpressure instead of unbounded spawning.
type Pool struct {
	tasks  chan Task
	logger logger.ZapLogger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

func NewPool(size, queueSize int, log logger.ZapLogger) *Pool {
	if size < 1 {
		size = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, queueSize),
		logger: log,
		cancel: cancel,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
	return p
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for task := range p.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("worker task panic", zap.String("task", task.Name), zap.Any("panic", r))
				}
			}()
			if err := task.Run(ctx); err != nil {
				p.logger.Warn("worker task failed", zap.String("task", task.Name), zap.Error(err))
			}
		}()
	}
}

// Submit enqueues a task without blocking. A full queue is surfaced to the
// caller rather than silently dropping work.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop drains queued tasks and waits for in-flight work to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
