package assign

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/internal/options"
	"github.com/arloliu/zqx/rank"
	"github.com/arloliu/zqx/vocab"
)

// Assigner binds vocabularies to codes using fixed tables and a priority list.
type Assigner struct {
	tier1  codespace.Tier1Table
	space  *codespace.Space
	ranker *rank.Ranker
}

type config struct {
	tier1     *codespace.Tier1Table
	exclusion *codespace.ExclusionSet
	space     *codespace.Space
	ranker    *rank.Ranker
}

// Option configures an Assigner.
type Option = options.Option[*config]

// WithTier1Table replaces the default tier-1 table.
func WithTier1Table(t codespace.Tier1Table) Option {
	return options.NoError(func(c *config) {
		c.tier1 = &t
	})
}

// WithExclusionSet replaces the default exclusion set used to generate the
// tier-2 sequence. Ignored when WithSpace is also given.
func WithExclusionSet(e codespace.ExclusionSet) Option {
	return options.NoError(func(c *config) {
		c.exclusion = &e
	})
}

// WithSpace supplies pre-generated code sequences.
func WithSpace(s *codespace.Space) Option {
	return options.New(func(c *config) error {
		if s == nil {
			return fmt.Errorf("%w: nil code space", errs.ErrInvalidAlphabet)
		}
		c.space = s

		return nil
	})
}

// WithPriority sets the priority list, most important word first.
func WithPriority(words []string) Option {
	return options.New(func(c *config) error {
		r, err := rank.New(words)
		if err != nil {
			return err
		}
		c.ranker = r

		return nil
	})
}

// WithRanker sets a prebuilt ranker.
func WithRanker(r *rank.Ranker) Option {
	return options.NoError(func(c *config) {
		c.ranker = r
	})
}

// New creates an Assigner.
//
// Defaults: codespace.DefaultTier1Table, codespace.DefaultExclusionSet and an
// empty priority list.
func New(opts ...Option) (*Assigner, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	a := &Assigner{
		space:  cfg.space,
		ranker: cfg.ranker,
	}

	if cfg.tier1 != nil {
		a.tier1 = *cfg.tier1
	} else {
		a.tier1 = codespace.DefaultTier1Table()
	}

	if a.space == nil {
		excl := codespace.DefaultExclusionSet()
		if cfg.exclusion != nil {
			excl = *cfg.exclusion
		}
		space, err := codespace.NewSpace(excl)
		if err != nil {
			return nil, err
		}
		a.space = space
	}

	if a.ranker == nil {
		r, err := rank.New(nil)
		if err != nil {
			return nil, err
		}
		a.ranker = r
	}

	return a, nil
}

// Tier1Table returns the tier-1 table used for seeding.
func (a *Assigner) Tier1Table() codespace.Tier1Table { return a.tier1 }

// Space returns the generated code sequences.
func (a *Assigner) Space() *codespace.Space { return a.space }

// Ranker returns the priority ranker.
func (a *Assigner) Ranker() *rank.Ranker { return a.ranker }

// Order returns the words of v that need generated codes, in the order they
// will be coded: ranked words by ascending rank, then the rest in vocabulary
// order. Tier-1 words and repeats are dropped; each word keeps the category of
// its first occurrence.
func (a *Assigner) Order(v vocab.Vocabulary) (vocab.Vocabulary, error) {
	pending := make(vocab.Vocabulary, 0, len(v))
	seen := make(map[string]struct{}, len(v))
	for i, e := range v {
		if e.Word == "" {
			return nil, fmt.Errorf("%w: empty word at position %d", errs.ErrInvalidVocabulary, i)
		}
		if a.tier1.Contains(e.Word) {
			continue
		}
		if _, ok := seen[e.Word]; ok {
			continue
		}
		seen[e.Word] = struct{}{}
		pending = append(pending, e)
	}

	ix := a.ranker.Index(pending)

	type ranked struct {
		entry vocab.Entry
		rank  int
	}
	priority := make([]ranked, 0, len(ix))
	other := make(vocab.Vocabulary, 0, len(pending)-len(ix))
	for _, e := range pending {
		if r, ok := ix.Rank(e.Word); ok {
			priority = append(priority, ranked{entry: e, rank: r})
			continue
		}
		other = append(other, e)
	}
	slices.SortStableFunc(priority, func(x, y ranked) int {
		return cmp.Compare(x.rank, y.rank)
	})

	out := make(vocab.Vocabulary, 0, len(pending))
	for _, p := range priority {
		out = append(out, p.entry)
	}

	return append(out, other...), nil
}

// Assign binds every word of v to a code.
//
// The result contains each tier-1 pair plus one record per distinct remaining
// word. An empty vocabulary yields only the tier-1 records. Returns
// errs.ErrCodeSpaceExhausted when tier 3 runs out and errs.ErrInvalidVocabulary
// for empty words.
func (a *Assigner) Assign(v vocab.Vocabulary) (*Assignment, error) {
	order, err := a.Order(v)
	if err != nil {
		return nil, err
	}

	result := newAssignment(a.tier1.Len() + len(order))

	categories := make(map[string]string, a.tier1.Len())
	for _, e := range v {
		if _, ok := categories[e.Word]; !ok && a.tier1.Contains(e.Word) {
			categories[e.Word] = e.Category
		}
	}
	for _, p := range a.tier1.Pairs() {
		rec := Record{Word: p.Word, Code: p.Code, Tier: format.Tier1, Category: categories[p.Word]}
		if err := result.add(rec); err != nil {
			return nil, err
		}
	}

	w := newWalker(a.space)

	for _, e := range order {
		b, err := w.bind(e.Word)
		if err != nil {
			return nil, err
		}
		if err := result.add(Record{Word: e.Word, Code: b.code, Tier: b.tier, Category: e.Category}); err != nil {
			return nil, err
		}
	}

	return result, nil
}
