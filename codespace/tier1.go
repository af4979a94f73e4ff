package codespace

import (
	"fmt"
	"strings"

	"github.com/arloliu/zqx/errs"
)

// Tier1Alphabet is the 36-symbol alphabet of single-character codes.
const Tier1Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Tier1Pair binds a single-symbol code to a word.
type Tier1Pair struct {
	Code string
	Word string
}

// Tier1Table is the hand-authored tier-1 bijection. Pair order is preserved
// and is the order in which tier-1 records appear in an assignment.
type Tier1Table struct {
	pairs  []Tier1Pair
	byWord map[string]string
	byCode map[string]string
}

// The mappings are scrambled on purpose: no letter matches its word's sound.
var defaultTier1 = [...]Tier1Pair{
	{"a", "do"}, {"b", "say"}, {"c", "self/I"}, {"d", "with"}, {"e", "but"},
	{"f", "this"}, {"g", "what"}, {"h", "have"}, {"i", "make"}, {"j", "know"},
	{"k", "be"}, {"l", "for"}, {"m", "and"}, {"n", "to"}, {"o", "like"},
	{"p", "go"}, {"q", "if"}, {"r", "all"}, {"s", "not"}, {"t", "of"},
	{"u", "we"}, {"v", "in"}, {"w", "or"}, {"x", "it"}, {"y", "my"},
	{"z", "you"}, {"0", "false"}, {"1", "true"}, {"2", "from"}, {"3", "at"},
	{"4", "on"}, {"5", "by"}, {"6", "give"}, {"7", "get"}, {"8", "other"},
	{"9", "each"},
}

// NewTier1Table validates and builds a tier-1 table.
//
// Every code must be a single symbol of Tier1Alphabet, and both codes and words
// must be unique. Violations return errs.ErrInvalidTier1Table.
func NewTier1Table(pairs ...Tier1Pair) (Tier1Table, error) {
	t := Tier1Table{
		pairs:  make([]Tier1Pair, 0, len(pairs)),
		byWord: make(map[string]string, len(pairs)),
		byCode: make(map[string]string, len(pairs)),
	}

	for _, p := range pairs {
		if !IsTier1Code(p.Code) {
			return Tier1Table{}, fmt.Errorf("%w: code %q is not a tier-1 symbol", errs.ErrInvalidTier1Table, p.Code)
		}
		if strings.TrimSpace(p.Word) == "" {
			return Tier1Table{}, fmt.Errorf("%w: empty word for code %q", errs.ErrInvalidTier1Table, p.Code)
		}
		if w, ok := t.byCode[p.Code]; ok {
			return Tier1Table{}, fmt.Errorf("%w: code %q bound to both %q and %q", errs.ErrInvalidTier1Table, p.Code, w, p.Word)
		}
		if c, ok := t.byWord[p.Word]; ok {
			return Tier1Table{}, fmt.Errorf("%w: word %q bound to both %q and %q", errs.ErrInvalidTier1Table, p.Word, c, p.Code)
		}

		t.byCode[p.Code] = p.Word
		t.byWord[p.Word] = p.Code
		t.pairs = append(t.pairs, p)
	}

	return t, nil
}

// DefaultTier1Table returns the built-in 36-entry table.
func DefaultTier1Table() Tier1Table {
	t, err := NewTier1Table(defaultTier1[:]...)
	if err != nil {
		panic(fmt.Sprintf("codespace: default tier-1 table is invalid: %v", err))
	}

	return t
}

// Pairs returns a copy of the table in declaration order.
func (t Tier1Table) Pairs() []Tier1Pair {
	out := make([]Tier1Pair, len(t.pairs))
	copy(out, t.pairs)

	return out
}

// Len returns the number of bound codes.
func (t Tier1Table) Len() int {
	return len(t.pairs)
}

// CodeOf returns the tier-1 code bound to word.
func (t Tier1Table) CodeOf(word string) (string, bool) {
	c, ok := t.byWord[word]
	return c, ok
}

// WordOf returns the word bound to a tier-1 code.
func (t Tier1Table) WordOf(code string) (string, bool) {
	w, ok := t.byCode[code]
	return w, ok
}

// Contains reports whether word is bound in tier 1.
func (t Tier1Table) Contains(word string) bool {
	_, ok := t.byWord[word]
	return ok
}
