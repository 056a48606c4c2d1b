package worker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/pistonsim/oerror"
)

// Task is a named function run by a Pool. The name is attached to crash reports.
type Task struct {
	Name string
	Run  func()
}

// Pool runs submitted tasks on a fixed amount of goroutines. A task that panics is reported to sentry and does
// not take its worker down.
type Pool struct {
	queue  chan Task
	wg     sync.WaitGroup
	panics atomic.Int64
	// OnPanic, if set, is called with the name of every task that panicked and the value it panicked with.
	OnPanic func(name string, v any)
}

// New starts a Pool with the amount of workers passed. Zero or less starts one worker per CPU.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan Task, workers)}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		p.run(t)
	}
}

func (p *Pool) run(t Task) {
	defer func() {
		if err := recover(); err != nil {
			p.panics.Add(1)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("task", t.Name)
			})
			hub.Recover(oerror.New("task %v crashed: %v", t.Name, err))
			hub.Flush(time.Second * 5)
			if p.OnPanic != nil {
				p.OnPanic(t.Name, err)
			}
		}
	}()
	t.Run()
}

// Submit queues t. It blocks while all workers are busy and the queue is full.
func (p *Pool) Submit(t Task) {
	p.queue <- t
}

// Close waits for all submitted tasks to finish and stops the workers. No tasks may be submitted after Close.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// Panics returns the amount of tasks that panicked.
func (p *Pool) Panics() int64 {
	return p.panics.Load()
}
