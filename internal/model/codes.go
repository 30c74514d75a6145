package model

// Code is a machine-readable failure code carried by error status messages.
type Code string

const (
	CodeInsufficientWallet           Code = "INSUFFICIENT_WALLET"
	CodePendingChangeBlocksInsertion Code = "PENDING_CHANGE_BLOCKS_INSERTION"
	CodeCashReturnedCardActive       Code = "CASH_RETURNED_CARD_ACTIVE"
	CodeBillRejected                 Code = "BILL_REJECTED"
	CodeCardUnreadable               Code = "CARD_UNREADABLE"
	CodeNoCardPresent                Code = "NO_CARD_PRESENT"
	CodeSlotNotFound                 Code = "SLOT_NOT_FOUND"
	CodeSoldOut                      Code = "SOLD_OUT"
	CodeNoPaymentMethod              Code = "NO_PAYMENT_METHOD"
	CodeInsufficientCardBalance      Code = "INSUFFICIENT_CARD_BALANCE"
	CodeInsufficientCashBalance      Code = "INSUFFICIENT_CASH_BALANCE"
	CodeNothingToReturn              Code = "NOTHING_TO_RETURN"
	CodeNothingDispensed             Code = "NOTHING_DISPENSED"
	CodeNoChangeAvailable            Code = "NO_CHANGE_AVAILABLE"
)

// Category groups codes for logging and metrics.
type Category string

const (
	CategoryNone               Category = ""
	CategoryNotFound           Category = "not_found"
	CategoryFailedPrecondition Category = "failed_precondition"
	CategoryRejected           Category = "rejected"
)

// Category maps the code to its failure category.
func (c Code) Category() Category {
	switch c {
	case "":
		return CategoryNone
	case CodeSlotNotFound:
		return CategoryNotFound
	case CodeBillRejected, CodeCardUnreadable, CodeCashReturnedCardActive:
		return CategoryRejected
	default:
		return CategoryFailedPrecondition
	}
}
