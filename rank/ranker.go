// Package rank orders the high-frequency words that should receive the
// shortest generated codes.
package rank

import (
	"fmt"

	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/vocab"
)

// Index maps a word to its zero-based position in the priority list.
// Lower ranks are coded first. Words without a rank are lowest priority.
type Index map[string]int

// Rank returns the rank of word.
func (ix Index) Rank(word string) (int, bool) {
	r, ok := ix[word]
	return r, ok
}

// Ranker holds a priority list ordered from most to least important.
type Ranker struct {
	words []string
	ranks map[string]int
}

// New builds a ranker from a priority list.
//
// The list must not contain blank words (errs.ErrInvalidPriority) or repeats
// (errs.ErrDuplicatePriority); repeats would make the rank of a word ambiguous.
func New(priority []string) (*Ranker, error) {
	r := &Ranker{
		words: make([]string, 0, len(priority)),
		ranks: make(map[string]int, len(priority)),
	}
	for i, w := range priority {
		if w == "" {
			return nil, fmt.Errorf("%w: blank word at position %d", errs.ErrInvalidPriority, i)
		}
		if prev, ok := r.ranks[w]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", errs.ErrDuplicatePriority, w, prev, i)
		}
		r.ranks[w] = i
		r.words = append(r.words, w)
	}

	return r, nil
}

// Len returns the length of the priority list.
func (r *Ranker) Len() int {
	return len(r.words)
}

// Words returns a copy of the priority list.
func (r *Ranker) Words() []string {
	out := make([]string, len(r.words))
	copy(out, r.words)

	return out
}

// Rank returns the position of word in the priority list.
func (r *Ranker) Rank(word string) (int, bool) {
	i, ok := r.ranks[word]
	return i, ok
}

// Index ranks the words of v that appear in the priority list. A word that
// occurs in several categories is ranked once. Priority words missing from v
// are ignored.
func (r *Ranker) Index(v vocab.Vocabulary) Index {
	ix := make(Index)
	for _, e := range v {
		if _, done := ix[e.Word]; done {
			continue
		}
		if i, ok := r.ranks[e.Word]; ok {
			ix[e.Word] = i
		}
	}

	return ix
}
