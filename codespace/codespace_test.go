package codespace

import (
	"testing"

	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/stretchr/testify/require"
)

func TestDefaultExclusionSet(t *testing.T) {
	excl := DefaultExclusionSet()

	require.Equal(t, len(defaultExcluded), excl.Len())
	for _, w := range []string{"ad", "be", "do", "it", "we", "yo"} {
		require.True(t, excl.Contains(w), w)
	}
	require.False(t, excl.Contains("aa"))
	require.False(t, excl.Contains("zz"))

	words := excl.Words()
	require.IsIncreasing(t, words)
	require.Equal(t, "ad", words[0])
}

func TestNewExclusionSet_Invalid(t *testing.T) {
	for _, w := range []string{"", "a", "abc", "A1", "Ab", "é"} {
		_, err := NewExclusionSet(w)
		require.ErrorIs(t, err, errs.ErrInvalidExclusion, w)
	}
}

func TestNewExclusionSet_CollapsesRepeats(t *testing.T) {
	excl, err := NewExclusionSet("ab", "ab", "cd")
	require.NoError(t, err)
	require.Equal(t, 2, excl.Len())
}

func TestDefaultTier1Table(t *testing.T) {
	table := DefaultTier1Table()

	require.Equal(t, 36, table.Len())

	seen := make(map[string]bool)
	for _, p := range table.Pairs() {
		require.True(t, IsTier1Code(p.Code), p.Code)
		require.False(t, seen[p.Code], "duplicate code %s", p.Code)
		seen[p.Code] = true
	}
	require.Len(t, seen, len(Tier1Alphabet))

	code, ok := table.CodeOf("know")
	require.True(t, ok)
	require.Equal(t, "j", code)

	word, ok := table.WordOf("9")
	require.True(t, ok)
	require.Equal(t, "each", word)

	require.True(t, table.Contains("self/I"))
	require.False(t, table.Contains("zebra"))
}

func TestTier1Table_PairsIsCopy(t *testing.T) {
	table := DefaultTier1Table()

	pairs := table.Pairs()
	pairs[0].Word = "mutated"

	require.Equal(t, "do", table.Pairs()[0].Word)
}

func TestNewTier1Table_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Tier1Pair
	}{
		{"multi-char code", []Tier1Pair{{"ab", "x"}}},
		{"uppercase code", []Tier1Pair{{"A", "x"}}},
		{"empty word", []Tier1Pair{{"a", " "}}},
		{"duplicate code", []Tier1Pair{{"a", "x"}, {"a", "y"}}},
		{"duplicate word", []Tier1Pair{{"a", "x"}, {"b", "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTier1Table(tt.pairs...)
			require.ErrorIs(t, err, errs.ErrInvalidTier1Table)
		})
	}
}

func TestTier2Codes(t *testing.T) {
	excl := DefaultExclusionSet()
	codes := Tier2Codes(excl)

	require.Len(t, codes, 676-excl.Len())
	require.Equal(t, "aa", codes[0])
	require.Equal(t, "ab", codes[1])
	require.Equal(t, "ac", codes[2])
	require.Equal(t, "zz", codes[len(codes)-1])
	require.IsIncreasing(t, codes)

	for _, c := range codes {
		require.False(t, excl.Contains(c), c)
		require.True(t, IsTier2Code(c), c)
	}
}

func TestTier2Codes_EmptyExclusion(t *testing.T) {
	codes := Tier2Codes(ExclusionSet{})

	require.Len(t, codes, 676)
	require.Equal(t, "ad", codes[3])
}

func TestTier3Codes(t *testing.T) {
	codes := Tier3Codes()

	require.Len(t, codes, 8000)
	require.Equal(t, "bbb", codes[0])
	require.Equal(t, "bbc", codes[1])
	require.Equal(t, "zzz", codes[len(codes)-1])
	require.IsIncreasing(t, codes)

	for _, c := range codes {
		require.True(t, IsTier3Code(c), c)
		require.NotContains(t, c, "y")
	}
}

func TestNewSpace_Default(t *testing.T) {
	excl := DefaultExclusionSet()
	space, err := NewSpace(excl)
	require.NoError(t, err)

	require.Equal(t, 676-excl.Len(), space.Tier2Capacity())
	require.Equal(t, 8000, space.Tier3Capacity())
	require.Equal(t, space.Tier2Capacity(), space.Capacity(format.Tier2))
	require.Equal(t, 8000, space.Capacity(format.Tier3))
	require.Equal(t, 0, space.Capacity(format.Tier1))
	require.Equal(t, "aa", space.Tier2(0))
	require.Equal(t, "bbb", space.Tier3(0))
	require.Equal(t, Tier2Codes(excl), space.Tier2Codes())
	require.Equal(t, Tier3Codes(), space.Tier3Codes())
	require.Equal(t, excl.Len(), space.Exclusion().Len())
}

func TestNewSpace_Deterministic(t *testing.T) {
	a, err := NewSpace(DefaultExclusionSet())
	require.NoError(t, err)
	b, err := NewSpace(DefaultExclusionSet())
	require.NoError(t, err)

	require.Equal(t, a.Tier2Codes(), b.Tier2Codes())
	require.Equal(t, a.Tier3Codes(), b.Tier3Codes())
}

func TestNewSpace_SubstituteAlphabets(t *testing.T) {
	excl, err := NewExclusionSet("ab")
	require.NoError(t, err)

	space, err := NewSpace(excl, WithTier2Alphabet("ab"), WithTier3Alphabet("bc"))
	require.NoError(t, err)

	require.Equal(t, []string{"aa", "ba", "bb"}, space.Tier2Codes())
	require.Equal(t, []string{"bbb", "bbc", "bcb", "bcc", "cbb", "cbc", "ccb", "ccc"}, space.Tier3Codes())
}

func TestNewSpace_InvalidAlphabet(t *testing.T) {
	for _, alpha := range []string{"", "aa", "aB", "a1"} {
		_, err := NewSpace(ExclusionSet{}, WithTier2Alphabet(alpha))
		require.ErrorIs(t, err, errs.ErrInvalidAlphabet, alpha)

		_, err = NewSpace(ExclusionSet{}, WithTier3Alphabet(alpha))
		require.ErrorIs(t, err, errs.ErrInvalidAlphabet, alpha)
	}
}

func TestTierOf(t *testing.T) {
	tests := []struct {
		code string
		tier format.Tier
		ok   bool
	}{
		{"a", format.Tier1, true},
		{"7", format.Tier1, true},
		{"zc", format.Tier2, true},
		{"bcf", format.Tier3, true},
		{"abc", 0, false},
		{"byb", 0, false},
		{"A", 0, false},
		{"", 0, false},
		{"a1", 0, false},
	}
	for _, tt := range tests {
		tier, ok := TierOf(tt.code)
		require.Equal(t, tt.ok, ok, tt.code)
		require.Equal(t, tt.tier, tier, tt.code)
	}
}
