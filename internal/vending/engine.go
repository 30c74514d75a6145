// Package vending implements the transaction engine of the vending machine.
//
// The Engine owns the slots, the payment session, the dispensed queue, the
// change tray and the customer's wallet. Every entry point applies one external
// event, replaces the status message, bumps its sequence and returns a
// Snapshot. Domain failures are reported through the message (severity error
// plus a model.Code), never as Go errors.
//
// An Engine is not safe for concurrent use; callers serialize commands
// (see the queue package).
package vending

import (
	"math/rand"
	"time"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/phrase"
	"github.com/fairyhunter13/vending-machine-simulator/internal/random"
)

// Engine is the vending machine state machine.
type Engine struct {
	slots     []model.Slot
	index     map[model.SlotID]int
	session   model.Session
	dispensed []model.DispensedItem
	tray      int64
	wallet    int64
	message   model.StatusMessage

	chance     random.Chance
	rejectRate float64
	phrases    phrase.Formatter
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog replaces the factory catalog. Slots keep the given order.
func WithCatalog(slots []model.Slot) Option {
	return func(e *Engine) {
		e.slots = append([]model.Slot(nil), slots...)
	}
}

// WithWallet sets the customer's starting cash.
func WithWallet(amount int64) Option {
	return func(e *Engine) { e.wallet = amount }
}

// WithCardBalance sets the funds available on the card.
func WithCardBalance(amount int64) Option {
	return func(e *Engine) { e.session.CardBalance = amount }
}

// WithChance sets the source drawn once per accepted bill.
func WithChance(c random.Chance) Option {
	return func(e *Engine) { e.chance = c }
}

// WithBillRejectRate sets the probability that a bill is rejected.
func WithBillRejectRate(rate float64) Option {
	return func(e *Engine) { e.rejectRate = rate }
}

// WithFormatter sets the status message catalog.
func WithFormatter(f phrase.Formatter) Option {
	return func(e *Engine) { e.phrases = f }
}

// New returns an engine in its initial state: factory catalog, no payment,
// empty queues and the idle greeting at sequence 0.
func New(opts ...Option) *Engine {
	e := &Engine{
		slots:      DefaultCatalog(DefaultStock),
		session:    model.Session{PaymentMethod: model.PaymentNone, CardBalance: DefaultCardBalance},
		wallet:     DefaultWallet,
		rejectRate: DefaultBillRejectRate,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.chance == nil {
		e.chance = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.phrases == nil {
		e.phrases = phrase.Default()
	}
	e.index = make(map[model.SlotID]int, len(e.slots))
	for i, s := range e.slots {
		e.index[s.ID] = i
	}
	e.message = model.StatusMessage{
		Text:     e.phrases.Format(phrase.KeyGreeting, phrase.Args{}),
		Severity: model.SeverityIdle,
	}
	return e
}

// Snapshot returns a copy of the current state without touching the message.
func (e *Engine) Snapshot() model.Snapshot {
	slots := make([]model.Slot, len(e.slots))
	copy(slots, e.slots)
	dispensed := make([]model.DispensedItem, len(e.dispensed))
	copy(dispensed, e.dispensed)
	return model.Snapshot{
		Session:    e.session,
		Slots:      slots,
		Dispensed:  dispensed,
		ChangeTray: e.tray,
		Wallet:     e.wallet,
		Message:    e.message,
	}
}

// Greeting returns the idle greeting of the configured catalog.
func (e *Engine) Greeting() string {
	return e.phrases.Format(phrase.KeyGreeting, phrase.Args{})
}

// InsertCash feeds amount from the wallet into the machine.
func (e *Engine) InsertCash(amount int64, kind model.CashKind) model.Snapshot {
	if amount > e.wallet {
		return e.fail(model.CodeInsufficientWallet, phrase.KeyInsufficientWallet, phrase.Args{})
	}
	if kind == model.CashBill && e.tray > 0 {
		return e.fail(model.CodePendingChangeBlocksInsertion, phrase.KeyPendingChange, phrase.Args{})
	}
	if e.session.PaymentMethod == model.PaymentCard {
		e.wallet -= amount
		e.tray += amount
		return e.fail(model.CodeCashReturnedCardActive, phrase.KeyCashReturnedCardActive, phrase.Args{Amount: amount})
	}
	if kind == model.CashBill && e.chance.Float64() < e.rejectRate {
		e.wallet -= amount
		e.tray += amount
		return e.fail(model.CodeBillRejected, phrase.KeyBillRejected, phrase.Args{Amount: amount})
	}

	e.wallet -= amount
	e.session.PaymentMethod = model.PaymentCash
	e.session.CashBalance += amount
	return e.info(phrase.KeyCashInserted, phrase.Args{Amount: amount, Balance: e.session.CashBalance})
}

// InsertCard refunds any inserted cash to the tray and then reads the card.
func (e *Engine) InsertCard(kind model.CardKind) model.Snapshot {
	refund := e.session.CashBalance
	e.tray += refund
	e.session.CashBalance = 0

	if kind == model.CardError {
		e.session.PaymentMethod = model.PaymentNone
		return e.fail(model.CodeCardUnreadable, phrase.KeyCardUnreadable, phrase.Args{Refund: refund})
	}
	e.session.PaymentMethod = model.PaymentCard
	return e.info(phrase.KeyCardAccepted, phrase.Args{Refund: refund})
}

// EjectCard ends a card session. The card balance carries over.
func (e *Engine) EjectCard() model.Snapshot {
	if e.session.PaymentMethod != model.PaymentCard {
		return e.fail(model.CodeNoCardPresent, phrase.KeyNoCardPresent, phrase.Args{})
	}
	e.session.PaymentMethod = model.PaymentNone
	return e.info(phrase.KeyCardEjected, phrase.Args{})
}

// SelectSlot vends one unit of slot id with the active payment method.
func (e *Engine) SelectSlot(id model.SlotID) model.Snapshot {
	i, ok := e.index[id]
	if !ok {
		return e.fail(model.CodeSlotNotFound, phrase.KeySlotNotFound, phrase.Args{})
	}
	slot := e.slots[i]
	if slot.Stock <= 0 {
		return e.fail(model.CodeSoldOut, phrase.KeySoldOut, phrase.Args{Name: slot.Name})
	}
	switch e.session.PaymentMethod {
	case model.PaymentCard:
		if e.session.CardBalance < slot.UnitPrice {
			return e.fail(model.CodeInsufficientCardBalance, phrase.KeyInsufficientCard, phrase.Args{Amount: slot.UnitPrice})
		}
	case model.PaymentCash:
		if e.session.CashBalance < slot.UnitPrice {
			return e.fail(model.CodeInsufficientCashBalance, phrase.KeyInsufficientCash, phrase.Args{Amount: slot.UnitPrice})
		}
	default:
		return e.fail(model.CodeNoPaymentMethod, phrase.KeyNoPaymentMethod, phrase.Args{})
	}

	e.slots[i].Stock--
	count := e.addDispensed(slot)
	args := phrase.Args{Name: slot.Name, Amount: slot.UnitPrice, Count: count}
	if e.session.PaymentMethod == model.PaymentCard {
		e.session.CardBalance -= slot.UnitPrice
		return e.info(phrase.KeyCardPurchase, args)
	}
	e.session.CashBalance -= slot.UnitPrice
	return e.info(phrase.KeyCashPurchase, args)
}

// addDispensed upserts the queue entry for slot and returns its new count.
func (e *Engine) addDispensed(slot model.Slot) int {
	for i := range e.dispensed {
		if e.dispensed[i].SlotID == slot.ID {
			e.dispensed[i].Count++
			return e.dispensed[i].Count
		}
	}
	e.dispensed = append(e.dispensed, model.DispensedItem{SlotID: slot.ID, Name: slot.Name, Count: 1})
	return 1
}

// ReturnChange moves the whole cash balance to the change tray.
func (e *Engine) ReturnChange() model.Snapshot {
	if e.session.PaymentMethod != model.PaymentCash || e.session.CashBalance == 0 {
		return e.fail(model.CodeNothingToReturn, phrase.KeyNothingToReturn, phrase.Args{})
	}
	amount := e.session.CashBalance
	e.tray += amount
	e.session.CashBalance = 0
	e.session.PaymentMethod = model.PaymentNone
	return e.info(phrase.KeyChangeReturned, phrase.Args{Amount: amount})
}

// CollectItem empties the dispensed queue.
func (e *Engine) CollectItem() model.Snapshot {
	if len(e.dispensed) == 0 {
		return e.fail(model.CodeNothingDispensed, phrase.KeyNothingDispensed, phrase.Args{})
	}
	e.dispensed = nil
	return e.info(phrase.KeyItemsCollected, phrase.Args{CardActive: e.session.PaymentMethod == model.PaymentCard})
}

// CollectChange moves the change tray into the wallet.
func (e *Engine) CollectChange() model.Snapshot {
	if e.tray == 0 {
		return e.fail(model.CodeNoChangeAvailable, phrase.KeyNoChangeAvailable, phrase.Args{})
	}
	e.wallet += e.tray
	e.tray = 0
	return e.info(phrase.KeyChangeCollected, phrase.Args{})
}

// SetMessage replaces the status message and has no other effect.
func (e *Engine) SetMessage(text string, severity model.Severity) model.Snapshot {
	e.message = model.StatusMessage{
		Text:     text,
		Severity: severity,
		Sequence: e.message.Sequence + 1,
	}
	return e.Snapshot()
}

func (e *Engine) info(key phrase.Key, args phrase.Args) model.Snapshot {
	return e.say(model.SeverityInfo, "", key, args)
}

func (e *Engine) fail(code model.Code, key phrase.Key, args phrase.Args) model.Snapshot {
	return e.say(model.SeverityError, code, key, args)
}

func (e *Engine) say(sev model.Severity, code model.Code, key phrase.Key, args phrase.Args) model.Snapshot {
	e.message = model.StatusMessage{
		Text:     e.phrases.Format(key, args),
		Severity: sev,
		Sequence: e.message.Sequence + 1,
		Code:     code,
	}
	return e.Snapshot()
}
