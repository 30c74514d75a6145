package model

// Op names one engine entry point.
type Op string

const (
	OpInsertCash    Op = "insert_cash"
	OpInsertCard    Op = "insert_card"
	OpEjectCard     Op = "eject_card"
	OpSelectSlot    Op = "select_slot"
	OpReturnChange  Op = "return_change"
	OpCollectItem   Op = "collect_item"
	OpCollectChange Op = "collect_change"
	OpSetMessage    Op = "set_message"
)

// Command is a serialized engine event. Only the fields relevant to Op are set.
type Command struct {
	Op       Op       `json:"op"`
	Amount   int64    `json:"amount,omitempty"`
	CashKind CashKind `json:"cash_kind,omitempty"`
	CardKind CardKind `json:"card_kind,omitempty"`
	SlotID   SlotID   `json:"slot_id,omitempty"`
	Text     string   `json:"text,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Sequence uint64   `json:"-"`

	// IfMessageSequence, when set, makes the command apply only while the
	// current message sequence still equals it.
	IfMessageSequence *uint64 `json:"-"`
}
