package codespace

import (
	"fmt"
	"strings"

	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/internal/options"
)

const (
	// Tier2Alphabet is the letter set of two-letter codes.
	Tier2Alphabet = "abcdefghijklmnopqrstuvwxyz"
	// Tier3Alphabet holds every letter except a, e, i, o, u and y. No English
	// word is spelled with these letters alone, so tier 3 needs no exclusion set.
	Tier3Alphabet = "bcdfghjklmnpqrstvwxz"
)

// Tier2Codes returns every two-letter code over Tier2Alphabet that is not in
// excl, first letter outermost.
func Tier2Codes(excl ExclusionSet) []string {
	return pairs(Tier2Alphabet, excl)
}

// Tier3Codes returns every three-letter code over Tier3Alphabet, first letter
// outermost.
func Tier3Codes() []string {
	return triples(Tier3Alphabet)
}

func pairs(alphabet string, excl ExclusionSet) []string {
	codes := make([]string, 0, len(alphabet)*len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		for j := 0; j < len(alphabet); j++ {
			code := string([]byte{alphabet[i], alphabet[j]})
			if excl.Contains(code) {
				continue
			}
			codes = append(codes, code)
		}
	}

	return codes
}

func triples(alphabet string) []string {
	n := len(alphabet)
	codes := make([]string, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				codes = append(codes, string([]byte{alphabet[i], alphabet[j], alphabet[k]}))
			}
		}
	}

	return codes
}

// Space holds the generated tier-2 and tier-3 code sequences.
type Space struct {
	tier2 []string
	tier3 []string
	excl  ExclusionSet
}

type spaceConfig struct {
	tier2Alphabet string
	tier3Alphabet string
}

// SpaceOption configures NewSpace.
type SpaceOption = options.Option[*spaceConfig]

// WithTier2Alphabet replaces the tier-2 letter set.
func WithTier2Alphabet(alphabet string) SpaceOption {
	return options.New(func(c *spaceConfig) error {
		if err := validateAlphabet(alphabet); err != nil {
			return fmt.Errorf("tier-2 alphabet: %w", err)
		}
		c.tier2Alphabet = alphabet

		return nil
	})
}

// WithTier3Alphabet replaces the tier-3 letter set. Letters should not let a
// tier-3 code spell a word; the caller is responsible for that property.
func WithTier3Alphabet(alphabet string) SpaceOption {
	return options.New(func(c *spaceConfig) error {
		if err := validateAlphabet(alphabet); err != nil {
			return fmt.Errorf("tier-3 alphabet: %w", err)
		}
		c.tier3Alphabet = alphabet

		return nil
	})
}

// NewSpace generates the tier-2 and tier-3 sequences.
//
// Without options the result depends only on excl and the package alphabets:
// 676 - excl.Len() tier-2 codes and 8000 tier-3 codes.
func NewSpace(excl ExclusionSet, opts ...SpaceOption) (*Space, error) {
	cfg := &spaceConfig{
		tier2Alphabet: Tier2Alphabet,
		tier3Alphabet: Tier3Alphabet,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Space{
		tier2: pairs(cfg.tier2Alphabet, excl),
		tier3: triples(cfg.tier3Alphabet),
		excl:  excl,
	}, nil
}

// Tier2 returns the tier-2 code at position i.
func (s *Space) Tier2(i int) string { return s.tier2[i] }

// Tier3 returns the tier-3 code at position i.
func (s *Space) Tier3(i int) string { return s.tier3[i] }

// Tier2Capacity returns the number of usable tier-2 codes.
func (s *Space) Tier2Capacity() int { return len(s.tier2) }

// Tier3Capacity returns the number of tier-3 codes.
func (s *Space) Tier3Capacity() int { return len(s.tier3) }

// Capacity returns the capacity of tier, or 0 for tier 1 and unknown tiers.
func (s *Space) Capacity(tier format.Tier) int {
	switch tier {
	case format.Tier2:
		return len(s.tier2)
	case format.Tier3:
		return len(s.tier3)
	default:
		return 0
	}
}

// Exclusion returns the exclusion set the tier-2 sequence was filtered with.
func (s *Space) Exclusion() ExclusionSet { return s.excl }

// Tier2Codes returns a copy of the tier-2 sequence.
func (s *Space) Tier2Codes() []string {
	out := make([]string, len(s.tier2))
	copy(out, s.tier2)

	return out
}

// Tier3Codes returns a copy of the tier-3 sequence.
func (s *Space) Tier3Codes() []string {
	out := make([]string, len(s.tier3))
	copy(out, s.tier3)

	return out
}

func validateAlphabet(alphabet string) error {
	if alphabet == "" {
		return fmt.Errorf("%w: empty", errs.ErrInvalidAlphabet)
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if !isLower(c) {
			return fmt.Errorf("%w: %q is not a lowercase ASCII letter", errs.ErrInvalidAlphabet, c)
		}
		if strings.IndexByte(alphabet[i+1:], c) >= 0 {
			return fmt.Errorf("%w: %q repeated", errs.ErrInvalidAlphabet, c)
		}
	}

	return nil
}

// IsTier1Code reports whether code is a single symbol of Tier1Alphabet.
func IsTier1Code(code string) bool {
	return len(code) == 1 && strings.IndexByte(Tier1Alphabet, code[0]) >= 0
}

// IsTier2Code reports whether code has the shape of a tier-2 code. It does
// not consult an exclusion set.
func IsTier2Code(code string) bool {
	return len(code) == 2 && isLower(code[0]) && isLower(code[1])
}

// IsTier3Code reports whether code is three letters of Tier3Alphabet.
func IsTier3Code(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if strings.IndexByte(Tier3Alphabet, code[i]) < 0 {
			return false
		}
	}

	return true
}

// TierOf infers the tier of a code from its shape. Codes of the three tiers
// never overlap, so the result is unambiguous.
func TierOf(code string) (format.Tier, bool) {
	switch {
	case IsTier1Code(code):
		return format.Tier1, true
	case IsTier2Code(code):
		return format.Tier2, true
	case IsTier3Code(code):
		return format.Tier3, true
	default:
		return 0, false
	}
}
