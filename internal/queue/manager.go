package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fairyhunter13/vending-machine-simulator/internal/config"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
	"github.com/fairyhunter13/vending-machine-simulator/internal/store"
	"github.com/fairyhunter13/vending-machine-simulator/internal/vending"
)

var (
	// ErrShuttingDown is returned by Submit once intake is closed.
	ErrShuttingDown = errors.New("shutting down")
	// ErrStopped is returned by Submit when the worker stops before replying.
	ErrStopped = errors.New("manager stopped")
)

// Engine is the state machine the manager's worker drives.
type Engine interface {
	Apply(cmd model.Command) (model.Snapshot, error)
	Snapshot() model.Snapshot
}

// Manager owns the engine and applies queued commands one at a time.
type Manager struct {
	cfg    config.Config
	q      *Queue
	st     *store.Store
	engine Engine
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewManager constructs a Manager with the given config, queue, store and engine.
func NewManager(cfg config.Config, q *Queue, st *store.Store, engine Engine) *Manager {
	return &Manager{cfg: cfg, q: q, st: st, engine: engine}
}

// Start publishes the initial snapshot and begins processing in the background.
func (m *Manager) Start(parent context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.st.Put(m.engine.Snapshot())
	m.ctx, m.cancel = context.WithCancel(parent)
	m.done = make(chan struct{})
	m.running = true
	m.q.Start(m.ctx, m.cfg.QueueHighWatermark)
	go m.worker(m.ctx, m.done)
	obs.Logger.Info("worker started", "worker_count", 1)
}

// Stop cancels background routines and waits for the worker to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel, done := m.cancel, m.done
	m.mu.Unlock()
	cancel()
	<-done
}

// worker is the only goroutine that touches the engine.
func (m *Manager) worker(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-m.q.jobs():
			r := m.apply(j.cmd)
			m.q.MarkProcessed()
			j.reply <- r
		}
	}
}

func (m *Manager) apply(cmd model.Command) result {
	snap, err := m.engine.Apply(cmd)
	if errors.Is(err, vending.ErrStaleCommand) {
		obs.Logger.Debug("command_skipped", "op", cmd.Op, "command_sequence", cmd.Sequence, "error", err)
		return result{snap: snap, err: err}
	}
	if err != nil {
		obs.Logger.Warn("command_invalid", "op", cmd.Op, "command_sequence", cmd.Sequence, "error", err)
		return result{snap: snap, err: err}
	}
	m.st.Put(snap)
	obs.Logger.Info("command_applied",
		"op", cmd.Op,
		"command_sequence", cmd.Sequence,
		"message_sequence", snap.Message.Sequence,
		"severity", snap.Message.Severity,
		"code", snap.Message.Code,
		"category", snap.Message.Code.Category(),
		"payment_method", snap.Session.PaymentMethod,
	)
	return result{snap: snap}
}

// Submit enqueues cmd and waits for the worker to apply it. The returned
// sequence is the order in which the worker applies commands. A command whose
// caller gives up through ctx is still applied once it reaches the worker.
func (m *Manager) Submit(ctx context.Context, cmd model.Command) (model.Snapshot, uint64, error) {
	j := newJob(cmd)
	seq, ok := m.q.enqueue(j)
	if !ok {
		return model.Snapshot{}, 0, ErrShuttingDown
	}
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	select {
	case r := <-j.reply:
		return r.snap, seq, r.err
	case <-ctx.Done():
		return model.Snapshot{}, seq, ctx.Err()
	case <-done:
		return model.Snapshot{}, seq, ErrStopped
	}
}

// BacklogSize returns pending items in the queue.
func (m *Manager) BacklogSize() int { return m.q.BacklogSize() }

// QueueDepth returns backlog plus buffered output items.
func (m *Manager) QueueDepth() int { return m.q.QueueDepth() }

// WorkerCount returns 1 while the worker runs and 0 otherwise.
func (m *Manager) WorkerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return 1
	}
	return 0
}

// IsShuttingDown reports whether new enqueues are rejected.
func (m *Manager) IsShuttingDown() bool { return m.q.IsShuttingDown() }

// CloseIntake disallows future enqueues.
func (m *Manager) CloseIntake() { m.q.CloseIntake() }

// QueueMetrics exposes the underlying queue metrics.
func (m *Manager) QueueMetrics() (enq, proc uint64, backlog, depth int) {
	return m.q.Metrics()
}

// DrainUntil blocks until the queue is fully drained or context is done.
func (m *Manager) DrainUntil(ctx context.Context) bool {
	for {
		enq, proc, backlog, depth := m.q.Metrics()
		if backlog == 0 && depth == 0 && enq == proc {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
