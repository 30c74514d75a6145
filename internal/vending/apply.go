package vending

import (
	"errors"
	"fmt"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

var (
	// ErrUnknownCommand is returned by Apply for an op it does not dispatch.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidCommand is returned by Apply when command fields are malformed.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrStaleCommand is returned by Apply when a conditional command's
	// expected message sequence is no longer current.
	ErrStaleCommand = errors.New("stale command")
)

// Validate checks the fields cmd.Op depends on.
func Validate(cmd model.Command) error {
	switch cmd.Op {
	case model.OpInsertCash:
		if cmd.Amount <= 0 {
			return fmt.Errorf("%w: amount must be > 0", ErrInvalidCommand)
		}
		if !cmd.CashKind.Valid() {
			return fmt.Errorf("%w: cash kind %q", ErrInvalidCommand, cmd.CashKind)
		}
	case model.OpInsertCard:
		if !cmd.CardKind.Valid() {
			return fmt.Errorf("%w: card kind %q", ErrInvalidCommand, cmd.CardKind)
		}
	case model.OpSetMessage:
		if !cmd.Severity.Valid() {
			return fmt.Errorf("%w: severity %q", ErrInvalidCommand, cmd.Severity)
		}
	case model.OpEjectCard, model.OpSelectSlot, model.OpReturnChange,
		model.OpCollectItem, model.OpCollectChange:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}
	return nil
}

// Apply dispatches a serialized command. An invalid or stale command leaves the
// engine untouched, including the message sequence.
func (e *Engine) Apply(cmd model.Command) (model.Snapshot, error) {
	if err := Validate(cmd); err != nil {
		return e.Snapshot(), err
	}
	if want := cmd.IfMessageSequence; want != nil && *want != e.message.Sequence {
		return e.Snapshot(), fmt.Errorf("%w: expected message sequence %d, have %d", ErrStaleCommand, *want, e.message.Sequence)
	}
	switch cmd.Op {
	case model.OpInsertCash:
		return e.InsertCash(cmd.Amount, cmd.CashKind), nil
	case model.OpInsertCard:
		return e.InsertCard(cmd.CardKind), nil
	case model.OpEjectCard:
		return e.EjectCard(), nil
	case model.OpSelectSlot:
		return e.SelectSlot(cmd.SlotID), nil
	case model.OpReturnChange:
		return e.ReturnChange(), nil
	case model.OpCollectItem:
		return e.CollectItem(), nil
	case model.OpCollectChange:
		return e.CollectChange(), nil
	default:
		return e.SetMessage(cmd.Text, cmd.Severity), nil
	}
}
