package phrase

import "unicode/utf8"

const (
	hangulFirst = 0xAC00
	hangulLast  = 0xD7A3
	// Each initial consonant and vowel pair spans 28 syllables; offset 0 has no final consonant.
	hangulFinals = 28
)

// Korean picks particles by whether the product name ends in a final consonant
// (물이, 물을, 물은) or not (콜라가, 커피를, 콜라는).
type Korean struct {
	// Names translates catalog product names into Korean.
	Names map[string]string
	// Final overrides final-consonant detection for words that are not Hangul.
	Final map[string]bool
}

// NewKorean returns the grammar with the default drink names.
func NewKorean() Korean {
	return Korean{
		Names: map[string]string{
			"cola":   "콜라",
			"water":  "물",
			"coffee": "커피",
		},
	}
}

// Product implements Grammar.
func (k Korean) Product(name string) string {
	if v, ok := k.Names[name]; ok {
		return v
	}
	return name
}

// Subject implements Grammar.
func (k Korean) Subject(name string) string { return k.attach(name, "이", "가") }

// Object implements Grammar.
func (k Korean) Object(name string) string { return k.attach(name, "을", "를") }

// Topic implements Grammar.
func (k Korean) Topic(name string) string { return k.attach(name, "은", "는") }

func (k Korean) attach(name, afterFinal, afterVowel string) string {
	w := k.Product(name)
	if k.hasFinal(w) {
		return w + afterFinal
	}
	return w + afterVowel
}

func (k Korean) hasFinal(w string) bool {
	if v, ok := k.Final[w]; ok {
		return v
	}
	r, _ := utf8.DecodeLastRuneInString(w)
	if r < hangulFirst || r > hangulLast {
		return false
	}
	return (r-hangulFirst)%hangulFinals != 0
}

// Plain leaves product names untouched in every role.
type Plain struct{}

// Product implements Grammar.
func (Plain) Product(name string) string { return name }

// Subject implements Grammar.
func (Plain) Subject(name string) string { return name }

// Object implements Grammar.
func (Plain) Object(name string) string { return name }

// Topic implements Grammar.
func (Plain) Topic(name string) string { return name }
