// Package queue serializes engine commands through an in-memory queue and a single worker.
package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
)

// result is what the worker hands back to the submitter of a job.
type result struct {
	snap model.Snapshot
	err  error
}

// job is a command waiting for the worker, with the channel its result goes to.
type job struct {
	cmd   model.Command
	reply chan result
}

func newJob(cmd model.Command) job {
	return job{cmd: cmd, reply: make(chan result, 1)}
}

// Queue is a simple buffered job queue with a background broker.
type Queue struct {
	mu           sync.Mutex
	backlog      []job
	notify       chan struct{}
	out          chan job
	shuttingDown atomic.Bool
	seq          Sequencer

	enqueued  atomic.Uint64
	processed atomic.Uint64
}

// New creates a Queue with a buffered output channel.
func New(outBuffer int) *Queue {
	if outBuffer <= 0 {
		outBuffer = 64
	}
	return &Queue{
		notify: make(chan struct{}, 1),
		out:    make(chan job, outBuffer),
	}
}

// Start runs the broker loop.
func (q *Queue) Start(ctx context.Context, highWatermark int) {
	go q.broker(ctx, highWatermark)
}

// broker moves backlog items to the output channel.
func (q *Queue) broker(ctx context.Context, highWatermark int) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		q.flushOnce()
		if highWatermark > 0 {
			if sz := q.BacklogSize(); sz > highWatermark {
				obs.Logger.Warn("queue backlog exceeds high watermark", "backlog_size", sz, "high_watermark", highWatermark)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-q.notify:
		case <-ticker.C:
		}
	}
}

// flushOnce drains backlog into the output buffer, oldest first.
func (q *Queue) flushOnce() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.backlog) > 0 && len(q.out) < cap(q.out) {
		item := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.out <- item
	}
}

// enqueue numbers a job and appends it to the backlog under the same lock, so
// command sequences follow backlog order. It returns the assigned sequence.
func (q *Queue) enqueue(j job) (uint64, bool) {
	if q.shuttingDown.Load() {
		return 0, false
	}
	q.enqueued.Add(1)
	q.mu.Lock()
	j.cmd.Sequence = q.seq.Next()
	seq := j.cmd.Sequence
	q.backlog = append(q.backlog, j)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return seq, true
}

// jobs exposes the output channel.
func (q *Queue) jobs() <-chan job { return q.out }

// BacklogSize returns the number of enqueued-but-not-yet-output jobs.
func (q *Queue) BacklogSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// QueueDepth returns backlog plus buffered output items.
func (q *Queue) QueueDepth() int {
	q.mu.Lock()
	bl := len(q.backlog)
	q.mu.Unlock()
	return bl + len(q.out)
}

// MarkProcessed increases the processed counter.
func (q *Queue) MarkProcessed() { q.processed.Add(1) }

// Metrics returns counters and sizes for observability.
func (q *Queue) Metrics() (enq, proc uint64, backlog, depth int) {
	enq = q.enqueued.Load()
	proc = q.processed.Load()
	backlog = q.BacklogSize()
	depth = q.QueueDepth()
	return enq, proc, backlog, depth
}

// CloseIntake disallows future enqueues.
func (q *Queue) CloseIntake() { q.shuttingDown.Store(true) }

// IsShuttingDown reports if intake has been closed.
func (q *Queue) IsShuttingDown() bool { return q.shuttingDown.Load() }
