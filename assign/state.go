package assign

import (
	"fmt"

	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
)

// walkState is the phase of the code walk.
type walkState uint8

const (
	// stateSeekTier2 binds words to tier-2 codes while any remain.
	stateSeekTier2 walkState = iota
	// stateExhaustedUseTier3 binds words to tier-3 codes.
	stateExhaustedUseTier3
	// stateDone accepts no further words.
	stateDone
)

func (s walkState) String() string {
	switch s {
	case stateSeekTier2:
		return "SeekTier2"
	case stateExhaustedUseTier3:
		return "ExhaustedUseTier3"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// cursor is the next unread position in each generated sequence.
type cursor struct {
	tier2 int
	tier3 int
}

// binding is the code chosen for one word.
type binding struct {
	code string
	tier format.Tier
}

// initialState returns the state a walk over space starts in.
func initialState(space *codespace.Space) walkState {
	if space.Tier2Capacity() == 0 {
		return stateExhaustedUseTier3
	}

	return stateSeekTier2
}

// step binds word and returns the next state and cursor. It does not mutate
// its inputs.
//
// In stateSeekTier2 the tier-2 cursor first moves past every code equal to the
// word's leading two characters; those codes are consumed, not deferred. If the
// cursor runs off the end the word falls through to tier 3 in the same step.
func step(s walkState, c cursor, space *codespace.Space, word string) (binding, walkState, cursor, error) {
	switch s {
	case stateSeekTier2:
		prefix := leading(word)
		for c.tier2 < space.Tier2Capacity() && space.Tier2(c.tier2) == prefix {
			c.tier2++
		}
		if c.tier2 < space.Tier2Capacity() {
			b := binding{code: space.Tier2(c.tier2), tier: format.Tier2}
			c.tier2++

			next := stateSeekTier2
			if c.tier2 == space.Tier2Capacity() {
				next = stateExhaustedUseTier3
			}

			return b, next, c, nil
		}

		return step(stateExhaustedUseTier3, c, space, word)

	case stateExhaustedUseTier3:
		if c.tier3 >= space.Tier3Capacity() {
			return binding{}, stateDone, c, fmt.Errorf("%w: no tier-3 code left for %q (capacity %d)",
				errs.ErrCodeSpaceExhausted, word, space.Tier3Capacity())
		}
		b := binding{code: space.Tier3(c.tier3), tier: format.Tier3}
		c.tier3++

		return b, stateExhaustedUseTier3, c, nil

	default:
		return binding{}, s, c, fmt.Errorf("%w: state %s, cannot bind %q", errs.ErrWalkFinished, s, word)
	}
}

// leading returns the first two bytes of word, or all of it when shorter.
// Codes are ASCII, so a byte prefix matches exactly when a character prefix does.
func leading(word string) string {
	if len(word) < 2 {
		return word
	}

	return word[:2]
}

// walker drives step over a sequence of words.
type walker struct {
	space *codespace.Space
	state walkState
	cur   cursor
}

func newWalker(space *codespace.Space) *walker {
	return &walker{space: space, state: initialState(space)}
}

func (w *walker) bind(word string) (binding, error) {
	b, next, cur, err := step(w.state, w.cur, w.space, word)
	w.state, w.cur = next, cur

	return b, err
}
