package vending

import (
	"strconv"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

const (
	DefaultStock       = 5
	DefaultWallet      = 10000
	DefaultCardBalance = 10000
	// DefaultBillRejectRate is the chance that an inserted bill is not recognized.
	DefaultBillRejectRate = 0.15
)

type product struct {
	name  string
	price int64
}

var (
	cola   = product{name: "cola", price: 1100}
	water  = product{name: "water", price: 600}
	coffee = product{name: "coffee", price: 700}
)

// layout lists the product of slots 1..16 in keypad order.
var layout = []product{
	cola, water, coffee, water,
	water, coffee, water, water,
	water, water, water, coffee,
	water, water, water, water,
}

// DefaultCatalog returns the 16-slot factory catalog with stock units per slot.
func DefaultCatalog(stock int) []model.Slot {
	slots := make([]model.Slot, len(layout))
	for i, p := range layout {
		id := model.SlotID(i + 1)
		slots[i] = model.Slot{
			ID:        id,
			Code:      strconv.Itoa(int(id)),
			Name:      p.name,
			UnitPrice: p.price,
			Stock:     stock,
		}
	}
	return slots
}
