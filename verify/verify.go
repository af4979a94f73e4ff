package verify

import (
	"errors"
	"fmt"
	"iter"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/internal/collision"
	"github.com/arloliu/zqx/internal/options"
	"github.com/arloliu/zqx/vocab"
)

type config struct {
	vocabulary      vocab.Vocabulary
	checkVocab      bool
	tier1           codespace.Tier1Table
	checkTier1      bool
	selfResemblance bool
	alphabet        bool
}

// Option configures an optional check.
type Option = options.Option[*config]

// WithVocabulary requires every word of v to be present in the assignment.
func WithVocabulary(v vocab.Vocabulary) Option {
	return options.NoError(func(c *config) {
		c.vocabulary = v
		c.checkVocab = true
	})
}

// WithTier1Table requires the tier-1 records to match t exactly.
func WithTier1Table(t codespace.Tier1Table) Option {
	return options.NoError(func(c *config) {
		c.tier1 = t
		c.checkTier1 = true
	})
}

// WithSelfResemblance rejects tier-2 codes equal to their word's first two
// characters.
func WithSelfResemblance() Option {
	return options.NoError(func(c *config) {
		c.selfResemblance = true
	})
}

// WithAlphabetCheck requires each code to have the shape of its tier.
func WithAlphabetCheck() Option {
	return options.NoError(func(c *config) {
		c.alphabet = true
	})
}

// All enables every optional check that does not need extra input.
func All() []Option {
	return []Option{WithSelfResemblance(), WithAlphabetCheck()}
}

// CheckAssignment runs Check over the records of a.
func CheckAssignment(a *assign.Assignment, excl codespace.ExclusionSet, opts ...Option) *Report {
	return Check(a.All(), excl, opts...)
}

// Check verifies records against the exclusion set and the enabled options.
//
// It never panics on malformed input; every problem becomes a Violation.
func Check(records iter.Seq[assign.Record], excl codespace.ExclusionSet, opts ...Option) *Report {
	report := &Report{}

	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		report.add(Violation{Kind: KindInvalidRecord, Err: err})
		return report
	}

	tracker := collision.NewTracker()
	seen := make(map[string]assign.Record)
	var order []assign.Record

	for r := range records {
		report.checked++

		if err := tracker.Track(r.Code, r.Word); err != nil {
			report.add(Violation{Kind: KindInvalidRecord, Word: r.Word, Code: r.Code, Err: err})
			continue
		}
		if prev, dup := seen[r.Word]; dup {
			report.add(Violation{
				Kind: KindInvalidRecord, Word: r.Word, Code: r.Code,
				Err: fmt.Errorf("%w: %q bound to %q and %q", errs.ErrDuplicateWord, r.Word, prev.Code, r.Code),
			})
			continue
		}
		seen[r.Word] = r
		order = append(order, r)

		if r.Tier == format.Tier2 && excl.Contains(r.Code) {
			report.add(Violation{
				Kind: KindExcluded, Word: r.Word, Code: r.Code,
				Err: fmt.Errorf("%w: %q assigned to %q", errs.ErrExcludedCode, r.Code, r.Word),
			})
		}
		if cfg.selfResemblance && r.Tier == format.Tier2 && len(r.Word) >= 2 && r.Word[:2] == r.Code {
			report.add(Violation{
				Kind: KindSelfResemblance, Word: r.Word, Code: r.Code,
				Err: fmt.Errorf("%w: %q coded as %q", errs.ErrSelfResemblance, r.Word, r.Code),
			})
		}
		if cfg.alphabet && !shapeMatches(r) {
			report.add(Violation{
				Kind: KindAlphabet, Word: r.Word, Code: r.Code,
				Err: fmt.Errorf("%w: %q is not a %s code (word %q)", errs.ErrAlphabetMismatch, r.Code, r.Tier, r.Word),
			})
		}
	}

	for _, c := range tracker.Collisions() {
		report.add(Violation{
			Kind: KindCollision, Word: c.Words[0], Code: c.Code,
			Err: fmt.Errorf("%w: %q shared by %q", errs.ErrCodeCollision, c.Code, c.Words),
		})
	}

	if cfg.checkTier1 {
		checkTier1(report, cfg.tier1, seen, order)
	}
	if cfg.checkVocab {
		checkComplete(report, cfg.vocabulary, seen)
	}

	return report
}

func shapeMatches(r assign.Record) bool {
	switch r.Tier {
	case format.Tier1:
		return codespace.IsTier1Code(r.Code)
	case format.Tier2:
		return codespace.IsTier2Code(r.Code)
	case format.Tier3:
		return codespace.IsTier3Code(r.Code)
	default:
		return false
	}
}

func checkTier1(report *Report, table codespace.Tier1Table, seen map[string]assign.Record, order []assign.Record) {
	for _, p := range table.Pairs() {
		r, ok := seen[p.Word]
		switch {
		case !ok:
			report.add(Violation{
				Kind: KindTier1Mismatch, Word: p.Word,
				Err: fmt.Errorf("%w: %q missing, want code %q", errs.ErrTier1Mismatch, p.Word, p.Code),
			})
		case r.Tier != format.Tier1 || r.Code != p.Code:
			report.add(Violation{
				Kind: KindTier1Mismatch, Word: p.Word, Code: r.Code,
				Err: fmt.Errorf("%w: %q is %q in %s, want %q in tier1", errs.ErrTier1Mismatch, p.Word, r.Code, r.Tier, p.Code),
			})
		}
	}

	for _, r := range order {
		if r.Tier == format.Tier1 && !table.Contains(r.Word) {
			report.add(Violation{
				Kind: KindTier1Mismatch, Word: r.Word, Code: r.Code,
				Err: fmt.Errorf("%w: %q is not in the tier-1 table", errs.ErrTier1Mismatch, r.Word),
			})
		}
	}
}

func checkComplete(report *Report, v vocab.Vocabulary, seen map[string]assign.Record) {
	missing := make(map[string]struct{})
	for _, e := range v {
		if _, ok := seen[e.Word]; ok {
			continue
		}
		if _, dup := missing[e.Word]; dup {
			continue
		}
		missing[e.Word] = struct{}{}
		report.add(Violation{
			Kind: KindIncomplete, Word: e.Word,
			Err: fmt.Errorf("%w: %q has no code", errs.ErrIncompleteAssignment, e.Word),
		})
	}
}

// Kind classifies a violation.
type Kind uint8

const (
	// KindCollision is one code bound to several words.
	KindCollision Kind = iota + 1
	// KindExcluded is a tier-2 code from the exclusion set.
	KindExcluded
	// KindIncomplete is a vocabulary word without a code.
	KindIncomplete
	// KindTier1Mismatch is a tier-1 binding that differs from the fixed table.
	KindTier1Mismatch
	// KindSelfResemblance is a tier-2 code equal to its word's first two letters.
	KindSelfResemblance
	// KindAlphabet is a code outside its tier's alphabet or length.
	KindAlphabet
	// KindInvalidRecord is a malformed or duplicated record.
	KindInvalidRecord
)

// Kinds lists every violation kind in declaration order.
var Kinds = []Kind{
	KindCollision, KindExcluded, KindIncomplete, KindTier1Mismatch,
	KindSelfResemblance, KindAlphabet, KindInvalidRecord,
}

func (k Kind) String() string {
	switch k {
	case KindCollision:
		return "collision"
	case KindExcluded:
		return "excluded"
	case KindIncomplete:
		return "incomplete"
	case KindTier1Mismatch:
		return "tier1_mismatch"
	case KindSelfResemblance:
		return "self_resemblance"
	case KindAlphabet:
		return "alphabet"
	case KindInvalidRecord:
		return "invalid_record"
	default:
		return "unknown"
	}
}

// Violation is one broken property.
type Violation struct {
	Kind Kind
	Word string
	Code string
	Err  error
}

func (v Violation) Error() string {
	return v.Err.Error()
}

func (v Violation) Unwrap() error {
	return v.Err
}

// Report collects the violations found by Check.
type Report struct {
	violations []Violation
	checked    int
}

func (r *Report) add(v Violation) {
	r.violations = append(r.violations, v)
}

// OK reports whether no violation was found.
func (r *Report) OK() bool {
	return len(r.violations) == 0
}

// Violations returns the number of violations.
func (r *Report) Violations() int {
	return len(r.violations)
}

// List returns a copy of the violations in detection order.
func (r *Report) List() []Violation {
	return append([]Violation(nil), r.violations...)
}

// Count returns the number of violations of kind k.
func (r *Report) Count(k Kind) int {
	n := 0
	for _, v := range r.violations {
		if v.Kind == k {
			n++
		}
	}

	return n
}

// Checked returns the number of records inspected.
func (r *Report) Checked() int {
	return r.checked
}

// Err joins every violation into one error, or returns nil when OK.
// errors.Is matches the sentinel of any contained violation.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}

	list := make([]error, len(r.violations))
	for i, v := range r.violations {
		list[i] = v
	}

	return errors.Join(list...)
}
