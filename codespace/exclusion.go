package codespace

import (
	"fmt"
	"slices"

	"github.com/arloliu/zqx/errs"
)

// defaultExcluded are the two-letter English words that may never be tier-2 codes.
var defaultExcluded = [...]string{
	"ad", "ah", "am", "an", "as", "at", "aw", "ax",
	"be", "bo", "by",
	"do",
	"ed", "eh", "em", "en", "er", "ex",
	"go",
	"ha", "he", "hi", "ho",
	"id", "if", "in", "is", "it",
	"la", "lo",
	"ma", "me", "my",
	"no",
	"of", "oh", "ok", "on", "op", "or", "ow", "ox",
	"pa", "pi",
	"re",
	"sh", "so",
	"to",
	"uh", "um", "un", "up", "us",
	"we",
	"ye", "yo",
}

// ExclusionSet is an immutable set of two-letter strings barred from tier 2.
type ExclusionSet struct {
	words map[string]struct{}
}

// NewExclusionSet builds an exclusion set from two-letter lowercase words.
// Repeated words are collapsed.
//
// Returns errs.ErrInvalidExclusion if any word is not exactly two ASCII
// lowercase letters.
func NewExclusionSet(words ...string) (ExclusionSet, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) != 2 || !isLower(w[0]) || !isLower(w[1]) {
			return ExclusionSet{}, fmt.Errorf("%w: %q", errs.ErrInvalidExclusion, w)
		}
		set[w] = struct{}{}
	}

	return ExclusionSet{words: set}, nil
}

// DefaultExclusionSet returns the built-in set of excluded two-letter words.
func DefaultExclusionSet() ExclusionSet {
	set, err := NewExclusionSet(defaultExcluded[:]...)
	if err != nil {
		panic(fmt.Sprintf("codespace: default exclusion set is invalid: %v", err))
	}

	return set
}

// Contains reports whether code is excluded.
func (s ExclusionSet) Contains(code string) bool {
	_, ok := s.words[code]
	return ok
}

// Len returns the number of excluded words.
func (s ExclusionSet) Len() int {
	return len(s.words)
}

// Words returns the excluded words in lexicographic order.
func (s ExclusionSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)

	return out
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
