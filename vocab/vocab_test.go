package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/zqx/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lex := Default()

	require.NotEmpty(t, lex.Priority)
	require.Equal(t, "the", lex.Priority[0])
	require.Equal(t, []string{"function", "verb", "noun", "adjective", "adverb", "number", "tech"},
		lex.Vocabulary.Categories())

	unique := lex.Vocabulary.Unique()
	assert.Greater(t, len(unique), 2000)
	assert.Less(t, len(unique), len(lex.Vocabulary))

	seen := make(map[string]bool)
	for _, w := range lex.Priority {
		require.False(t, seen[w], "duplicate priority word %q", w)
		seen[w] = true
	}
}

func TestParse(t *testing.T) {
	src := `
priority:
  - beta
  - alpha
categories:
  - name: noun
    words: [alpha, "  gamma  "]
  - name: social
    words: [alpha, delta]
`
	lex, err := Parse([]byte(src))
	require.NoError(t, err)

	require.Equal(t, []string{"beta", "alpha"}, lex.Priority)
	require.Equal(t, Vocabulary{
		{Word: "alpha", Category: "noun"},
		{Word: "gamma", Category: "noun"},
		{Word: "alpha", Category: "social"},
		{Word: "delta", Category: "social"},
	}, lex.Vocabulary)
	require.Equal(t, []string{"alpha", "gamma", "delta"}, lex.Vocabulary.Unique().Words())
}

func TestParse_Empty(t *testing.T) {
	lex, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, lex.Priority)
	require.Empty(t, lex.Vocabulary)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"blank word":     "categories:\n  - name: noun\n    words: [\"  \"]\n",
		"blank priority": "priority: [\"\"]\n",
		"unnamed":        "categories:\n  - words: [a]\n",
		"unknown field":  "prio: [a]\n",
		"not yaml":       "priority: [a\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.ErrorIs(t, err, errs.ErrInvalidVocabulary)
		})
	}
}

func TestNormalize(t *testing.T) {
	// "café" with a combining acute accent vs. the precomposed form.
	decomposed := "cafe\u0301"
	require.Equal(t, "caf\u00e9", Normalize(" "+decomposed+"\t"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: tech\n    words: [api]\n"), 0o600))

	lex, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, Vocabulary{{Word: "api", Category: "tech"}}, lex.Vocabulary)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	lex, err := Load(strings.NewReader("priority: [x]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, lex.Priority)
}

func TestVocabulary_Append(t *testing.T) {
	v := FromWords("a", "one", "two").Append("b", "three")

	require.Equal(t, []string{"one", "two", "three"}, v.Words())
	require.Equal(t, []string{"a", "b"}, v.Categories())
}
