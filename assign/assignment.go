package assign

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/internal/hash"
)

// Record is one binding of a word to a code.
type Record struct {
	Word     string
	Code     string
	Tier     format.Tier
	Category string
}

// Counts holds the number of words per tier.
type Counts struct {
	Tier1 int
	Tier2 int
	Tier3 int
}

// Total returns the number of bound words.
func (c Counts) Total() int {
	return c.Tier1 + c.Tier2 + c.Tier3
}

// Of returns the count for tier, or 0 for an unknown tier.
func (c Counts) Of(tier format.Tier) int {
	switch tier {
	case format.Tier1:
		return c.Tier1
	case format.Tier2:
		return c.Tier2
	case format.Tier3:
		return c.Tier3
	default:
		return 0
	}
}

// Assignment is the completed word-to-code mapping.
//
// Records keep construction order: the tier-1 table first, then words in the
// order they were coded. The value is read-only once returned.
type Assignment struct {
	records []Record
	byWord  map[string]int
	counts  Counts
}

func newAssignment(capacity int) *Assignment {
	return &Assignment{
		records: make([]Record, 0, capacity),
		byWord:  make(map[string]int, capacity),
	}
}

func (a *Assignment) add(r Record) error {
	if r.Word == "" {
		return fmt.Errorf("%w: empty word", errs.ErrInvalidRecord)
	}
	if !r.Tier.Valid() {
		return fmt.Errorf("%w: %q has tier %d", errs.ErrInvalidTier, r.Word, r.Tier)
	}
	if _, ok := a.byWord[r.Word]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateWord, r.Word)
	}

	a.byWord[r.Word] = len(a.records)
	a.records = append(a.records, r)

	switch r.Tier {
	case format.Tier1:
		a.counts.Tier1++
	case format.Tier2:
		a.counts.Tier2++
	case format.Tier3:
		a.counts.Tier3++
	}

	return nil
}

// FromRecords rebuilds an assignment from records, for example after decoding
// a table file. Records are kept in the given order.
//
// Words must be unique and tiers valid. Codes are NOT checked for uniqueness
// here; run the verify package on the result for that.
func FromRecords(records []Record) (*Assignment, error) {
	a := newAssignment(len(records))
	for _, r := range records {
		if err := a.add(r); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Len returns the number of bound words.
func (a *Assignment) Len() int {
	return len(a.records)
}

// Lookup returns the record bound to word.
func (a *Assignment) Lookup(word string) (Record, bool) {
	i, ok := a.byWord[word]
	if !ok {
		return Record{}, false
	}

	return a.records[i], true
}

// Position returns the construction-order index of word.
func (a *Assignment) Position(word string) (int, bool) {
	i, ok := a.byWord[word]
	return i, ok
}

// Records returns a copy of all records in construction order.
func (a *Assignment) Records() []Record {
	return slices.Clone(a.records)
}

// All iterates over records in construction order.
func (a *Assignment) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range a.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Tier iterates over the records of one tier in construction order.
func (a *Assignment) Tier(tier format.Tier) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range a.records {
			if r.Tier != tier {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Sorted returns a copy of all records ordered alphabetically by word.
func (a *Assignment) Sorted() []Record {
	out := slices.Clone(a.records)
	slices.SortFunc(out, func(x, y Record) int {
		return cmp.Compare(x.Word, y.Word)
	})

	return out
}

// Counts returns the number of words per tier.
func (a *Assignment) Counts() Counts {
	return a.counts
}

// Fingerprint hashes every record in construction order. Two assignments have
// the same fingerprint when they bind the same words to the same codes and
// tiers in the same order.
func (a *Assignment) Fingerprint() uint64 {
	fp := hash.NewFingerprint()
	for _, r := range a.records {
		fp.Add(r.Word, r.Code, strconv.Itoa(int(r.Tier)), r.Category)
	}

	return fp.Sum64()
}
