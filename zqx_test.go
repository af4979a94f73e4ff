package zqx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/vocab"
)

func TestBuildDefault(t *testing.T) {
	res, err := BuildDefault()
	require.NoError(t, err)
	require.True(t, res.Report.OK(), "violations: %v", res.Report.Err())

	counts := res.Assignment.Counts()
	require.Equal(t, 36, counts.Tier1)
	require.LessOrEqual(t, counts.Tier2, res.Space.Tier2Capacity())
	require.Positive(t, counts.Tier3)
	require.Equal(t, res.Assignment.Len(), res.Report.Checked())

	rec, ok := res.Assignment.Lookup("of")
	require.True(t, ok)
	require.Equal(t, "t", rec.Code)
	require.Equal(t, format.Tier1, rec.Tier)
}

func TestBuild_PriorityFromLexicon(t *testing.T) {
	lex := &vocab.Lexicon{
		Priority:   []string{"zebra"},
		Vocabulary: vocab.FromWords("noun", "apple", "zebra"),
	}

	res, err := Build(lex)
	require.NoError(t, err)
	require.True(t, res.Report.OK())

	zebra, ok := res.Assignment.Lookup("zebra")
	require.True(t, ok)
	apple, ok := res.Assignment.Lookup("apple")
	require.True(t, ok)

	require.Equal(t, res.Space.Tier2(0), zebra.Code)
	require.Equal(t, res.Space.Tier2(1), apple.Code)
	require.Equal(t, "noun", apple.Category)
}

func TestBuild_OptionsOverridePriority(t *testing.T) {
	lex := &vocab.Lexicon{
		Priority:   []string{"zebra"},
		Vocabulary: vocab.FromWords("noun", "apple", "zebra"),
	}

	res, err := Build(lex, assign.WithPriority(nil))
	require.NoError(t, err)

	apple, _ := res.Assignment.Lookup("apple")
	require.Equal(t, res.Space.Tier2(0), apple.Code)
}

func TestBuild_CustomExclusion(t *testing.T) {
	excl, err := codespace.NewExclusionSet("aa", "ab")
	require.NoError(t, err)

	res, err := Build(&vocab.Lexicon{Vocabulary: vocab.FromWords("x", "zoo")}, assign.WithExclusionSet(excl))
	require.NoError(t, err)
	require.True(t, res.Report.OK())

	zoo, _ := res.Assignment.Lookup("zoo")
	require.Equal(t, "ac", zoo.Code)
}

func TestBuild_InvalidPriority(t *testing.T) {
	_, err := Build(&vocab.Lexicon{Priority: []string{"dup", "dup"}})
	require.ErrorIs(t, err, errs.ErrDuplicatePriority)
}
