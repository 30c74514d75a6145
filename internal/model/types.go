// Package model defines domain types used by the service.
package model

// SlotID identifies a dispensing position on the keypad (1..16).
type SlotID int

// PaymentMethod is the active payment context of the session.
type PaymentMethod string

const (
	PaymentNone PaymentMethod = "none"
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// CashKind distinguishes coins from bills. Only bills can be rejected.
type CashKind string

const (
	CashCoin CashKind = "coin"
	CashBill CashKind = "bill"
)

// Valid reports whether k is a known cash kind.
func (k CashKind) Valid() bool { return k == CashCoin || k == CashBill }

// CardKind selects between a readable and an unreadable card.
type CardKind string

const (
	CardNormal CardKind = "normal"
	CardError  CardKind = "error"
)

// Valid reports whether k is a known card kind.
func (k CardKind) Valid() bool { return k == CardNormal || k == CardError }

// Severity classifies a status message.
type Severity string

const (
	SeverityIdle  Severity = "idle"
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityIdle || s == SeverityInfo || s == SeverityError
}

// Slot is one dispensing position.
type Slot struct {
	ID        SlotID `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Stock     int    `json:"stock"`
}

// Session is the current payment context.
type Session struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	CashBalance   int64         `json:"cash_balance"`
	CardBalance   int64         `json:"card_balance"`
}

// DispensedItem is an entry of the dispensed queue, unique by slot.
type DispensedItem struct {
	SlotID SlotID `json:"slot_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// StatusMessage is the latest operator-facing notice.
type StatusMessage struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
	Sequence uint64   `json:"sequence"`
	Code     Code     `json:"code,omitempty"`
}

// Snapshot is a read-only copy of the whole machine state.
type Snapshot struct {
	Session    Session         `json:"session"`
	Slots      []Slot          `json:"slots"`
	Dispensed  []DispensedItem `json:"dispensed"`
	ChangeTray int64           `json:"change_tray"`
	Wallet     int64           `json:"wallet"`
	Message    StatusMessage   `json:"message"`
}

// Slot returns the slot with the given id from the snapshot.
func (s Snapshot) Slot(id SlotID) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return Slot{}, false
}
