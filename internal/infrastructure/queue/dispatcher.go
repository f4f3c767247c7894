package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	taskTimeout    = 30 * time.Second
)

// Observer receives task lifecycle notifications.
type Observer interface {
	Queued(name string)
	Done(name string, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) Queued(string)                     {}
func (nopObserver) Done(string, error, time.Duration) {}

// Dispatcher routes background tasks to a fixed set of workers using
// consistent hashing on the task key, so tasks sharing a key run in order.
type Dispatcher struct {
	workers  []chan ports.Task
	log      zerolog.Logger
	observer Observer
	stopped  chan struct{}
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. A nil observer is allowed.
func NewDispatcher(numWorkers int, observer Observer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if observer == nil {
		observer = nopObserver{}
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Task, numWorkers),
		log:      log,
		observer: observer,
		stopped:  make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Task, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.stopped)
	}()
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a task to the worker responsible for its key. It blocks while
// that worker's buffer is full and drops the task once the dispatcher stopped.
func (d *Dispatcher) Enqueue(task ports.Task) {
	select {
	case <-d.stopped:
		d.log.Warn().Str("task", task.Name).Msg("dispatcher stopped, task dropped")
		return
	default:
	}

	select {
	case d.workers[d.shardIndex(task.Key)] <- task:
		d.observer.Queued(task.Name)
	case <-d.stopped:
		d.log.Warn().Str("task", task.Name).Msg("dispatcher stopped, task dropped")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Task) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			d.run(ctx, id, task)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, id int, task ports.Task) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("task", task.Name).Int("worker_id", id).Msg("task panicked")
		}
	}()

	taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	start := time.Now()
	err := task.Run(taskCtx)
	d.observer.Done(task.Name, err, time.Since(start))
	if err != nil {
		d.log.Error().Err(err).
			Str("task", task.Name).
			Str("key", task.Key).
			Int("worker_id", id).
			Msg("task failed")
	}
}
