package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fairyhunter13/vending-machine-simulator/internal/config"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
	"github.com/fairyhunter13/vending-machine-simulator/internal/random"
	"github.com/fairyhunter13/vending-machine-simulator/internal/store"
	"github.com/fairyhunter13/vending-machine-simulator/internal/vending"
)

func TestQueueNonBlockingEnqueue(t *testing.T) {
	q := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx, 0)
	for i := 0; i < 1000; i++ {
		seq, ok := q.enqueue(newJob(model.Command{Op: model.OpCollectChange}))
		if !ok {
			t.Fatalf("enqueue failed at %d", i)
		}
		if seq != uint64(i+1) {
			t.Fatalf("expected sequence %d, got %d", i+1, seq)
		}
	}
	if q.BacklogSize() == 0 {
		t.Fatalf("expected backlog > 0")
	}
}

func TestQueueShutdownIntake(t *testing.T) {
	q := New(1)
	q.CloseIntake()
	if !q.IsShuttingDown() {
		t.Fatalf("expected shutting down true")
	}
	_, ok := q.enqueue(newJob(model.Command{Op: model.OpEjectCard}))
	if ok {
		t.Fatalf("expected enqueue false when shutting down")
	}
}

func startManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	obs.InitLogger("error")
	st := store.New()
	eng := vending.New(vending.WithChance(random.Fixed(1)))
	mgr := NewManager(cfg, New(16), st, eng)
	mgr.Start(context.Background())
	t.Cleanup(mgr.Stop)
	return mgr, st
}

func TestManagerPublishesInitialSnapshot(t *testing.T) {
	_, st := startManager(t)
	snap, ok := st.Get()
	if !ok {
		t.Fatalf("expected initial snapshot")
	}
	if snap.Message.Sequence != 0 || snap.Wallet != 10000 {
		t.Fatalf("unexpected initial snapshot: %+v", snap.Message)
	}
}

func TestManagerSubmitAppliesInOrder(t *testing.T) {
	mgr, st := startManager(t)
	ctx := context.Background()

	snap, seq, err := mgr.Submit(ctx, model.Command{Op: model.OpInsertCash, Amount: 1000, CashKind: model.CashBill})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if seq != 1 || snap.Session.CashBalance != 1000 {
		t.Fatalf("unexpected: seq=%d cash=%d", seq, snap.Session.CashBalance)
	}
	snap, seq, err = mgr.Submit(ctx, model.Command{Op: model.OpSelectSlot, SlotID: 2})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if seq != 2 || snap.Session.CashBalance != 400 {
		t.Fatalf("unexpected: seq=%d cash=%d", seq, snap.Session.CashBalance)
	}
	stored, _ := st.Get()
	if stored.Message.Sequence != 2 {
		t.Fatalf("store not updated: %d", stored.Message.Sequence)
	}
}

func TestManagerSubmitInvalidCommand(t *testing.T) {
	mgr, st := startManager(t)
	_, _, err := mgr.Submit(context.Background(), model.Command{Op: model.OpInsertCash, Amount: -5, CashKind: model.CashCoin})
	if !errors.Is(err, vending.ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
	stored, _ := st.Get()
	if stored.Message.Sequence != 0 {
		t.Fatalf("invalid command must not bump sequence, got %d", stored.Message.Sequence)
	}
}

func TestManagerSerializesConcurrentSubmits(t *testing.T) {
	mgr, st := startManager(t)
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = mgr.Submit(context.Background(), model.Command{Op: model.OpSetMessage, Text: "hi", Severity: model.SeverityInfo})
		}()
	}
	wg.Wait()
	stored, _ := st.Get()
	if stored.Message.Sequence != n {
		t.Fatalf("expected sequence %d, got %d", n, stored.Message.Sequence)
	}
}

func TestManagerShutdown(t *testing.T) {
	mgr, _ := startManager(t)
	mgr.CloseIntake()
	_, _, err := mgr.Submit(context.Background(), model.Command{Op: model.OpEjectCard})
	if !errors.Is(err, ErrShuttingDown) {
		t.Fatalf("expected ErrShuttingDown, got %v", err)
	}
}

func TestManagerDrain(t *testing.T) {
	mgr, _ := startManager(t)
	for i := 0; i < 100; i++ {
		go func() {
			_, _, _ = mgr.Submit(context.Background(), model.Command{Op: model.OpCollectItem})
		}()
	}
	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelDrain()
	if ok := mgr.DrainUntil(ctxDrain); !ok {
		t.Fatalf("expected drain true")
	}
}

func TestManagerStopUnblocksSubmit(t *testing.T) {
	mgr, _ := startManager(t)
	mgr.Stop()
	if mgr.WorkerCount() != 0 {
		t.Fatalf("expected no workers after stop")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, _, err := mgr.Submit(ctx, model.Command{Op: model.OpEjectCard})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

// recordingEngine records the command sequence of every applied command.
type recordingEngine struct {
	*vending.Engine
	applied []uint64
}

func (r *recordingEngine) Apply(cmd model.Command) (model.Snapshot, error) {
	r.applied = append(r.applied, cmd.Sequence)
	return r.Engine.Apply(cmd)
}

func TestManagerAppliesInCommandSequenceOrder(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	obs.InitLogger("error")
	rec := &recordingEngine{Engine: vending.New(vending.WithChance(random.Fixed(1)))}
	mgr := NewManager(cfg, New(4), store.New(), rec)
	mgr.Start(context.Background())
	defer mgr.Stop()

	const n = 200
	seqs := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, seq, err := mgr.Submit(context.Background(), model.Command{Op: model.OpEjectCard})
			if err == nil {
				seqs <- seq
			}
		}()
	}
	wg.Wait()
	close(seqs)
	if len(seqs) != n {
		t.Fatalf("expected %d acks, got %d", n, len(seqs))
	}
	// applied is written by the worker before each reply
	for i, seq := range rec.applied {
		if seq != uint64(i+1) {
			t.Fatalf("command %d applied with sequence %d", i+1, seq)
		}
	}
}

func TestManagerSkipsStaleConditionalCommand(t *testing.T) {
	mgr, st := startManager(t)
	ctx := context.Background()
	if _, _, err := mgr.Submit(ctx, model.Command{Op: model.OpEjectCard}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	stale := uint64(0)
	_, _, err := mgr.Submit(ctx, model.Command{Op: model.OpSetMessage, Text: "hi", Severity: model.SeverityIdle, IfMessageSequence: &stale})
	if !errors.Is(err, vending.ErrStaleCommand) {
		t.Fatalf("expected ErrStaleCommand, got %v", err)
	}
	current := uint64(1)
	snap, _, err := mgr.Submit(ctx, model.Command{Op: model.OpSetMessage, Text: "hi", Severity: model.SeverityIdle, IfMessageSequence: &current})
	if err != nil || snap.Message.Sequence != 2 {
		t.Fatalf("expected applied message at 2, got %d (%v)", snap.Message.Sequence, err)
	}
	stored, _ := st.Get()
	if stored.Message.Text != "hi" {
		t.Fatalf("store not updated: %+v", stored.Message)
	}
}
