// Package idle restores the greeting once a status message has been shown
// long enough without any further activity.
package idle

import (
	"context"
	"errors"
	"time"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
	"github.com/fairyhunter13/vending-machine-simulator/internal/store"
	"github.com/fairyhunter13/vending-machine-simulator/internal/vending"
)

// Submitter accepts engine commands.
type Submitter interface {
	Submit(ctx context.Context, cmd model.Command) (model.Snapshot, uint64, error)
}

// Resetter watches the stored message sequence and issues a set_message
// command with the greeting after the message stayed unchanged for the quiet
// period. The command is conditional on the sequence the resetter observed, so
// a message that arrives in between is never replaced.
type Resetter struct {
	sub      Submitter
	st       *store.Store
	greeting string
	after    time.Duration
	poll     time.Duration
	now      func() time.Time

	lastSeq uint64
	since   time.Time
}

// New returns a Resetter. An after of zero disables it.
func New(sub Submitter, st *store.Store, greeting string, after, poll time.Duration) *Resetter {
	return &Resetter{
		sub:      sub,
		st:       st,
		greeting: greeting,
		after:    after,
		poll:     poll,
		now:      time.Now,
	}
}

// Run polls until ctx is done.
func (r *Resetter) Run(ctx context.Context) {
	if r.after <= 0 || r.poll <= 0 {
		obs.Logger.Info("idle resetter disabled")
		return
	}
	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()
	r.since = r.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// tick performs one observation and reports whether the greeting was restored.
func (r *Resetter) tick(ctx context.Context) bool {
	snap, ok := r.st.Get()
	if !ok {
		return false
	}
	now := r.now()
	if snap.Message.Sequence != r.lastSeq {
		r.lastSeq = snap.Message.Sequence
		r.since = now
		return false
	}
	if snap.Message.Severity == model.SeverityIdle {
		return false
	}
	if now.Sub(r.since) < r.after {
		return false
	}
	seen := r.lastSeq
	reset, _, err := r.sub.Submit(ctx, model.Command{
		Op:                model.OpSetMessage,
		Text:              r.greeting,
		Severity:          model.SeverityIdle,
		IfMessageSequence: &seen,
	})
	if errors.Is(err, vending.ErrStaleCommand) {
		obs.Logger.Debug("idle reset skipped", "error", err)
		return false
	}
	if err != nil {
		obs.Logger.Warn("idle reset failed", "error", err)
		return false
	}
	r.lastSeq = reset.Message.Sequence
	r.since = now
	obs.Logger.Debug("greeting restored", "message_sequence", reset.Message.Sequence)
	return true
}
