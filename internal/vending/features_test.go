package vending

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

// switchChance lets a scenario decide the outcome of the next bill draw.
type switchChance struct{ v float64 }

func (c *switchChance) Float64() float64 { return c.v }

type machineTestContext struct {
	chance *switchChance
	engine *Engine
	last   model.Snapshot
}

func (c *machineTestContext) reset() {
	c.chance = &switchChance{v: 1}
	c.engine = New(WithChance(c.chance))
	c.last = c.engine.Snapshot()
}

func (c *machineTestContext) aFreshMachine() error {
	c.reset()
	return nil
}

func (c *machineTestContext) billsAreAlwaysAccepted() error {
	c.chance.v = 1
	return nil
}

func (c *machineTestContext) theNextBillIsRejected() error {
	c.chance.v = 0
	return nil
}

func (c *machineTestContext) iInsertCash(amount int, kind string) error {
	c.last = c.engine.InsertCash(int64(amount), model.CashKind(kind))
	if kind == string(model.CashBill) {
		c.chance.v = 1
	}
	return nil
}

func (c *machineTestContext) iInsertACard(kind string) error {
	c.last = c.engine.InsertCard(model.CardKind(kind))
	return nil
}

func (c *machineTestContext) iEjectTheCard() error {
	c.last = c.engine.EjectCard()
	return nil
}

func (c *machineTestContext) iSelectSlot(id int) error {
	c.last = c.engine.SelectSlot(model.SlotID(id))
	return nil
}

func (c *machineTestContext) iReturnTheChange() error {
	c.last = c.engine.ReturnChange()
	return nil
}

func (c *machineTestContext) iCollectTheItems() error {
	c.last = c.engine.CollectItem()
	return nil
}

func (c *machineTestContext) iCollectTheChange() error {
	c.last = c.engine.CollectChange()
	return nil
}

func expectInt(what string, got int64, want int) error {
	if got != int64(want) {
		return fmt.Errorf("expected %s %d, got %d", what, want, got)
	}
	return nil
}

func (c *machineTestContext) theCashBalanceIs(want int) error {
	return expectInt("cash balance", c.last.Session.CashBalance, want)
}

func (c *machineTestContext) theCardBalanceIs(want int) error {
	return expectInt("card balance", c.last.Session.CardBalance, want)
}

func (c *machineTestContext) theWalletIs(want int) error {
	return expectInt("wallet", c.last.Wallet, want)
}

func (c *machineTestContext) theChangeTrayHolds(want int) error {
	return expectInt("change tray", c.last.ChangeTray, want)
}

func (c *machineTestContext) thePaymentMethodIs(want string) error {
	if got := c.last.Session.PaymentMethod; string(got) != want {
		return fmt.Errorf("expected payment method %s, got %s", want, got)
	}
	return nil
}

func (c *machineTestContext) slotHasInStock(id, want int) error {
	sl, ok := c.last.Slot(model.SlotID(id))
	if !ok {
		return fmt.Errorf("slot %d not found", id)
	}
	return expectInt(fmt.Sprintf("slot %d stock", id), int64(sl.Stock), want)
}

func (c *machineTestContext) theDispensedQueueIs(want string) error {
	parts := make([]string, 0, len(c.last.Dispensed))
	for _, d := range c.last.Dispensed {
		parts = append(parts, fmt.Sprintf("%d:%s:%d", d.SlotID, d.Name, d.Count))
	}
	if got := strings.Join(parts, ","); got != want {
		return fmt.Errorf("expected dispensed %q, got %q", want, got)
	}
	return nil
}

func (c *machineTestContext) theMessageSeverityIs(want string) error {
	if got := c.last.Message.Severity; string(got) != want {
		return fmt.Errorf("expected severity %s, got %s", want, got)
	}
	return nil
}

func (c *machineTestContext) theMessageCodeIs(want string) error {
	if got := c.last.Message.Code; string(got) != want {
		return fmt.Errorf("expected code %q, got %q", want, got)
	}
	return nil
}

func (c *machineTestContext) theMessageSequenceIs(want int) error {
	return expectInt("message sequence", int64(c.last.Message.Sequence), want)
}

func (c *machineTestContext) theMessageReads(want string) error {
	if got := c.last.Message.Text; got != want {
		return fmt.Errorf("expected message %q, got %q", want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &machineTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a fresh machine$`, tc.aFreshMachine)
	ctx.Step(`^bills are always accepted$`, tc.billsAreAlwaysAccepted)
	ctx.Step(`^the next bill is rejected$`, tc.theNextBillIsRejected)

	// When steps
	ctx.Step(`^I insert a (\d+) (coin|bill)$`, tc.iInsertCash)
	ctx.Step(`^I insert a (normal|error) card$`, tc.iInsertACard)
	ctx.Step(`^I eject the card$`, tc.iEjectTheCard)
	ctx.Step(`^I select slot (\d+)$`, tc.iSelectSlot)
	ctx.Step(`^I return the change$`, tc.iReturnTheChange)
	ctx.Step(`^I collect the items$`, tc.iCollectTheItems)
	ctx.Step(`^I collect the change$`, tc.iCollectTheChange)

	// Then steps
	ctx.Step(`^the cash balance is (\d+)$`, tc.theCashBalanceIs)
	ctx.Step(`^the card balance is (\d+)$`, tc.theCardBalanceIs)
	ctx.Step(`^the wallet is (\d+)$`, tc.theWalletIs)
	ctx.Step(`^the change tray holds (\d+)$`, tc.theChangeTrayHolds)
	ctx.Step(`^the payment method is (none|cash|card)$`, tc.thePaymentMethodIs)
	ctx.Step(`^slot (\d+) has (\d+) in stock$`, tc.slotHasInStock)
	ctx.Step(`^the dispensed queue is "([^"]*)"$`, tc.theDispensedQueueIs)
	ctx.Step(`^the message severity is (idle|info|error)$`, tc.theMessageSeverityIs)
	ctx.Step(`^the message code is "([^"]*)"$`, tc.theMessageCodeIs)
	ctx.Step(`^the message sequence is (\d+)$`, tc.theMessageSequenceIs)
	ctx.Step(`^the message reads "([^"]*)"$`, tc.theMessageReads)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
