package collision

import (
	"fmt"

	"github.com/arloliu/zqx/errs"
)

// Collision lists every word bound to one code, in tracking order.
type Collision struct {
	Code  string
	Words []string
}

// Tracker records which word owns each code and detects codes claimed by
// more than one word.
type Tracker struct {
	owners       map[string][]string // code → words, first owner first
	codes        []string            // codes in first-seen order
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		owners: make(map[string][]string),
		codes:  make([]string, 0),
	}
}

// Track records that word is bound to code.
//
// Returns errs.ErrInvalidRecord for an empty code or word, and
// errs.ErrDuplicateWord when the same pair is tracked twice.
//
// A second, different word for a known code is NOT an error: the collision
// flag is set and both words are kept for reporting.
func (t *Tracker) Track(code, word string) error {
	if code == "" || word == "" {
		return fmt.Errorf("%w: code %q, word %q", errs.ErrInvalidRecord, code, word)
	}

	words, exists := t.owners[code]
	if !exists {
		t.codes = append(t.codes, code)
	}
	for _, w := range words {
		if w == word {
			return fmt.Errorf("%w: %q already tracked for code %q", errs.ErrDuplicateWord, word, code)
		}
	}
	if exists {
		t.hasCollision = true
	}
	t.owners[code] = append(words, word)

	return nil
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Owner returns the first word tracked for code.
func (t *Tracker) Owner(code string) (string, bool) {
	words, ok := t.owners[code]
	if !ok {
		return "", false
	}

	return words[0], true
}

// Collisions returns every code with more than one word, ordered by when the
// code was first tracked.
func (t *Tracker) Collisions() []Collision {
	if !t.hasCollision {
		return nil
	}

	var out []Collision
	for _, code := range t.codes {
		words := t.owners[code]
		if len(words) < 2 {
			continue
		}
		out = append(out, Collision{Code: code, Words: append([]string(nil), words...)})
	}

	return out
}

// Count returns the number of distinct codes tracked.
func (t *Tracker) Count() int {
	return len(t.codes)
}

// Reset clears all tracked codes and collision state, keeping capacity.
func (t *Tracker) Reset() {
	clear(t.owners)
	t.codes = t.codes[:0]
	t.hasCollision = false
}
