// Package phrase renders status message text for the vending engine.
//
// The engine only names a message Key and passes Args; everything
// language-specific, including how product names agree with the words around
// them, lives in a locale Catalog.
package phrase

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key names a status message.
type Key string

const (
	KeyGreeting               Key = "greeting"
	KeyInsufficientWallet     Key = "insufficient_wallet"
	KeyPendingChange          Key = "pending_change"
	KeyCashReturnedCardActive Key = "cash_returned_card_active"
	KeyBillRejected           Key = "bill_rejected"
	KeyCashInserted           Key = "cash_inserted"
	KeyCardUnreadable         Key = "card_unreadable"
	KeyCardAccepted           Key = "card_accepted"
	KeyNoCardPresent          Key = "no_card_present"
	KeyCardEjected            Key = "card_ejected"
	KeySlotNotFound           Key = "slot_not_found"
	KeySoldOut                Key = "sold_out"
	KeyNoPaymentMethod        Key = "no_payment_method"
	KeyInsufficientCard       Key = "insufficient_card_balance"
	KeyInsufficientCash       Key = "insufficient_cash_balance"
	KeyCashPurchase           Key = "cash_purchase"
	KeyCardPurchase           Key = "card_purchase"
	KeyNothingToReturn        Key = "nothing_to_return"
	KeyChangeReturned         Key = "change_returned"
	KeyNothingDispensed       Key = "nothing_dispensed"
	KeyItemsCollected         Key = "items_collected"
	KeyNoChangeAvailable      Key = "no_change_available"
	KeyChangeCollected        Key = "change_collected"
)

// Args carries the values a message template may reference.
type Args struct {
	Name       string
	Amount     int64
	Balance    int64
	Refund     int64
	Count      int
	CardActive bool
}

// Formatter renders a message for key.
type Formatter interface {
	Format(key Key, args Args) string
}

// Grammar renders a product name in the role it plays in a sentence.
type Grammar interface {
	Product(name string) string
	Subject(name string) string
	Object(name string) string
	Topic(name string) string
}

// ErrUnknownLocale is returned when no catalog matches the requested locale.
var ErrUnknownLocale = errors.New("unknown locale")

type localeDef struct {
	tag      language.Tag
	messages map[Key]string
	grammar  func() Grammar
}

var locales = []localeDef{
	{tag: language.Korean, messages: koMessages, grammar: func() Grammar { return NewKorean() }},
	{tag: language.English, messages: enMessages, grammar: func() Grammar { return Plain{} }},
}

var matcher = language.NewMatcher([]language.Tag{language.Korean, language.English})

// Catalog is a Formatter for one locale.
type Catalog struct {
	tag       language.Tag
	printer   *message.Printer
	grammar   Grammar
	templates map[Key]*template.Template
}

// New builds the catalog that best matches locale, e.g. "ko", "ko-KR" or "en".
func New(locale string) (*Catalog, error) {
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	_, idx, conf := matcher.Match(requested)
	if conf == language.No {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	def := locales[idx]
	return newCatalog(def.tag, def.messages, def.grammar())
}

// Default returns the Korean catalog.
func Default() *Catalog {
	c, err := newCatalog(language.Korean, koMessages, NewKorean())
	if err != nil {
		panic(err)
	}
	return c
}

func newCatalog(tag language.Tag, messages map[Key]string, g Grammar) (*Catalog, error) {
	c := &Catalog{
		tag:       tag,
		printer:   message.NewPrinter(tag),
		grammar:   g,
		templates: make(map[Key]*template.Template, len(messages)),
	}
	funcs := template.FuncMap{
		"won":     c.amount,
		"product": g.Product,
		"subject": g.Subject,
		"object":  g.Object,
		"topic":   g.Topic,
	}
	for key, text := range messages {
		t, err := template.New(string(key)).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s template %s: %w", tag, key, err)
		}
		c.templates[key] = t
	}
	return c, nil
}

// Locale returns the BCP 47 tag of the catalog.
func (c *Catalog) Locale() string { return c.tag.String() }

// Format renders key with args. Unknown keys render as the key itself.
func (c *Catalog) Format(key Key, args Args) string {
	t, ok := c.templates[key]
	if !ok {
		return string(key)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, args); err != nil {
		return string(key)
	}
	return buf.String()
}

// amount formats n with the locale's digit grouping.
func (c *Catalog) amount(n int64) string {
	return c.printer.Sprintf("%d", n)
}
