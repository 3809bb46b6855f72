package thumbnail

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
	"github.com/VijayPandit2001/Asset-Browser/internal/memory"
	"github.com/VijayPandit2001/Asset-Browser/internal/metrics"
)

// DefaultQueueBuffer is the submission queue size used when the caller
// passes 0.
const DefaultQueueBuffer = 1024

// Handle tracks one submitted request. The result is delivered exactly once,
// through the pool callback and through Wait.
type Handle struct {
	req    Request
	done   chan struct{}
	result Result
}

// Path returns the source path of the submitted request.
func (h *Handle) Path() string { return h.req.Path }

// Done returns a channel closed when the result has been delivered.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the task completes and returns its result.
func (h *Handle) Wait() Result {
	<-h.done
	return h.result
}

// Pool executes thumbnail tasks on a bounded set of workers. Tasks are
// independent: they share no in-memory state and take no locks; the only
// shared resource is the cache directory tree. Results are delivered in
// completion order, not submission order, so consumers must match results
// to requests by path, not position.
type Pool struct {
	gen      *Generator
	jobs     chan *Handle
	mon      *memory.Monitor
	onResult func(Result)

	ctx    context.Context
	cancel context.CancelFunc

	workersWg sync.WaitGroup
	tasksWg   sync.WaitGroup

	mu     sync.Mutex
	closed bool

	submitted atomic.Int64
	completed atomic.Int64
}

// NewPool starts workers goroutines executing tasks with gen. onResult, if
// non-nil, is called once per task from a worker goroutine; it must not
// block for long. buffer is the submission queue size (0 for the default).
// mon, if non-nil, gates decoding under memory pressure.
func NewPool(gen *Generator, workers, buffer int, mon *memory.Monitor, onResult func(Result)) *Pool {
	if workers < 1 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = DefaultQueueBuffer
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		gen:      gen,
		jobs:     make(chan *Handle, buffer),
		mon:      mon,
		onResult: onResult,
		ctx:      ctx,
		cancel:   cancel,
	}

	metrics.PoolWorkers.Set(float64(workers))
	for i := 0; i < workers; i++ {
		p.workersWg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit enqueues a request and returns its handle. It does not block while
// the queue has room; beyond that the send is handed to a goroutine so the
// caller never stalls. Submit returns nil after Close.
//
// There is no mid-task cancellation: a superseded task runs to completion
// and its stale result is simply discarded by the consumer.
func (p *Pool) Submit(req Request) *Handle {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	h := &Handle{req: req, done: make(chan struct{})}
	p.tasksWg.Add(1)
	p.submitted.Add(1)
	p.mu.Unlock()

	metrics.QueueDepth.Inc()
	select {
	case p.jobs <- h:
	default:
		go func() {
			select {
			case p.jobs <- h:
			case <-p.ctx.Done():
				// Pool shut down with the queue still full; run inline so
				// the handle is still delivered exactly once.
				p.finish(h, p.gen.Generate(h.req))
			}
		}()
	}
	return h
}

// Wait blocks until every submitted task has been delivered.
func (p *Pool) Wait() {
	p.tasksWg.Wait()
}

// Close stops accepting submissions, waits for in-flight tasks to finish,
// and releases the workers.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.tasksWg.Wait()
	p.cancel()
	close(p.jobs)
	p.workersWg.Wait()
}

// Stats returns the numbers of submitted and completed tasks.
func (p *Pool) Stats() (submitted, completed int64) {
	return p.submitted.Load(), p.completed.Load()
}

func (p *Pool) worker(id int) {
	defer p.workersWg.Done()
	logging.Debug("Thumbnail worker %d started", id)

	for h := range p.jobs {
		// Decodes of large float frames spike the heap; hold here rather
		// than let every worker expand one at once.
		if p.mon != nil {
			if p.mon.IsPaused() {
				logging.Debug("Thumbnail worker %d waiting for memory headroom", id)
			}
			p.mon.WaitIfPaused()
		}
		p.finish(h, p.gen.Generate(h.req))
	}

	logging.Debug("Thumbnail worker %d finished", id)
}

// finish records and delivers a result exactly once.
func (p *Pool) finish(h *Handle, res Result) {
	h.result = res
	close(h.done)

	metrics.QueueDepth.Dec()
	p.completed.Add(1)
	p.tasksWg.Done()

	if p.onResult != nil {
		p.onResult(res)
	}
}
