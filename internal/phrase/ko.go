package phrase

var koMessages = map[Key]string{
	KeyGreeting:               "Hello. This is the XID Vending Machine.",
	KeyInsufficientWallet:     "지갑에 돈이 부족합니다.",
	KeyPendingChange:          "반환된 지폐를 먼저 가져간 후 다시 넣어 주세요.",
	KeyCashReturnedCardActive: "{{won .Amount}}원은 카드가 꽂혀 있어 바로 반환되었습니다.",
	KeyBillRejected:           "지폐가 인식되지 않았습니다. 반환된 지폐를 먼저 가져가 주세요.",
	KeyCashInserted:           "{{won .Amount}}원을 투입했습니다. (투입 금액 {{won .Balance}}원)",
	KeyCardUnreadable:         "{{if .Refund}}{{won .Refund}}원을 반환하고 {{end}}카드를 인식할 수 없습니다. 다른 카드를 사용해 주세요.",
	KeyCardAccepted:           "{{if .Refund}}{{won .Refund}}원을 반환하고 {{end}}카드가 인식되었습니다. 상품 번호를 입력해 주세요.",
	KeyNoCardPresent:          "꺼낼 카드가 없습니다.",
	KeyCardEjected:            "카드를 빼냈습니다.",
	KeySlotNotFound:           "선택한 음료를 찾을 수 없습니다.",
	KeySoldOut:                "{{topic .Name}} 품절입니다.",
	KeyNoPaymentMethod:        "먼저 현금을 넣거나 카드를 꽂아 주세요.",
	KeyInsufficientCard:       "카드 잔액이 부족합니다. 카드를 꺼내 주세요.",
	KeyInsufficientCash:       "금액이 부족합니다. ({{won .Amount}}원 필요)",
	KeyCashPurchase:           "{{subject .Name}} 나왔습니다. (이번 번호에서 총 {{.Count}}개 나옴)",
	KeyCardPurchase:           "{{object .Name}} 결제했습니다. (이번 번호에서 총 {{.Count}}개 나옴)",
	KeyNothingToReturn:        "반환할 금액이 없습니다.",
	KeyChangeReturned:         "{{won .Amount}}원을 반환했습니다.",
	KeyNothingDispensed:       "가져갈 음료가 없습니다.",
	KeyItemsCollected:         "음료를 가져갔습니다.{{if .CardActive}} 더 주문하지 않으시면 카드를 꺼내 주세요.{{end}}",
	KeyNoChangeAvailable:      "가져갈 거스름돈이 없습니다.",
	KeyChangeCollected:        "거스름돈을 지갑에 넣었습니다.",
}
