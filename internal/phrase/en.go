package phrase

var enMessages = map[Key]string{
	KeyGreeting:               "Hello. This is the XID Vending Machine.",
	KeyInsufficientWallet:     "Your wallet has insufficient funds.",
	KeyPendingChange:          "Please collect the returned bill before inserting another one.",
	KeyCashReturnedCardActive: "{{won .Amount}} won was returned right away because a card is inserted.",
	KeyBillRejected:           "The bill was not recognized. Please collect the returned bill first.",
	KeyCashInserted:           "Inserted {{won .Amount}} won. (Balance {{won .Balance}} won)",
	KeyCardUnreadable:         "{{if .Refund}}Returned {{won .Refund}} won. {{end}}The card is unreadable. Please use another card.",
	KeyCardAccepted:           "{{if .Refund}}Returned {{won .Refund}} won. {{end}}Card accepted. Please enter a product number.",
	KeyNoCardPresent:          "There is no card to eject.",
	KeyCardEjected:            "The card was ejected.",
	KeySlotNotFound:           "The selected drink could not be found.",
	KeySoldOut:                "{{topic .Name}} is sold out.",
	KeyNoPaymentMethod:        "Please insert cash or a card first.",
	KeyInsufficientCard:       "The card balance is insufficient. Please eject the card.",
	KeyInsufficientCash:       "Insufficient funds. ({{won .Amount}} won required)",
	KeyCashPurchase:           "{{subject .Name}} is ready. ({{.Count}} dispensed from this slot)",
	KeyCardPurchase:           "{{object .Name}} was charged. ({{.Count}} dispensed from this slot)",
	KeyNothingToReturn:        "There is no money to return.",
	KeyChangeReturned:         "Returned {{won .Amount}} won.",
	KeyNothingDispensed:       "There are no drinks to collect.",
	KeyItemsCollected:         "Drinks collected.{{if .CardActive}} Please eject the card if you are not ordering more.{{end}}",
	KeyNoChangeAvailable:      "There is no change to collect.",
	KeyChangeCollected:        "The change was put in your wallet.",
}
