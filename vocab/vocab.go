// Package vocab models the ordered word list that receives codes, and loads it
// from YAML lexicon files.
//
// A lexicon has two parts: a priority list (highest-frequency words, most
// important first) and a sequence of categories, each an ordered list of words.
// Category names are carried into the output for documentation only.
//
//	priority:
//	  - the
//	  - a
//	categories:
//	  - name: noun
//	    words: [time, person, year]
//
// The default lexicon is embedded and available through Default.
package vocab

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/zqx/errs"
)

//go:embed data/lexicon.yaml
var defaultLexicon []byte

// Entry is one vocabulary occurrence. A word may occur under several categories.
type Entry struct {
	Word     string
	Category string
}

// Vocabulary is an ordered sequence of entries. Order matters: non-priority
// words are coded in vocabulary order.
type Vocabulary []Entry

// Lexicon is a parsed lexicon file.
type Lexicon struct {
	Priority   []string
	Vocabulary Vocabulary
}

type lexiconFile struct {
	Priority   []string       `yaml:"priority"`
	Categories []categoryFile `yaml:"categories"`
}

type categoryFile struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// Normalize trims surrounding whitespace and converts w to Unicode NFC so that
// visually identical words compare equal.
func Normalize(w string) string {
	return norm.NFC.String(strings.TrimSpace(w))
}

// FromWords builds a vocabulary whose entries all share one category.
func FromWords(category string, words ...string) Vocabulary {
	v := make(Vocabulary, 0, len(words))
	for _, w := range words {
		v = append(v, Entry{Word: w, Category: category})
	}

	return v
}

// Append returns v extended with words under category.
func (v Vocabulary) Append(category string, words ...string) Vocabulary {
	return append(v, FromWords(category, words...)...)
}

// Words returns the words of v in order, repeats included.
func (v Vocabulary) Words() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Word
	}

	return out
}

// Unique returns the first occurrence of every word, in order.
func (v Vocabulary) Unique() Vocabulary {
	seen := make(map[string]struct{}, len(v))
	out := make(Vocabulary, 0, len(v))
	for _, e := range v {
		if _, ok := seen[e.Word]; ok {
			continue
		}
		seen[e.Word] = struct{}{}
		out = append(out, e)
	}

	return out
}

// Categories returns category names in first-seen order.
func (v Vocabulary) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range v {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}

	return out
}

// Parse decodes a YAML lexicon. Words are normalized; blank words and blank
// category names are rejected with errs.ErrInvalidVocabulary.
func Parse(data []byte) (*Lexicon, error) {
	var f lexiconFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidVocabulary, err)
	}

	lex := &Lexicon{
		Priority: make([]string, 0, len(f.Priority)),
	}
	for i, w := range f.Priority {
		w = Normalize(w)
		if w == "" {
			return nil, fmt.Errorf("%w: blank priority word at index %d", errs.ErrInvalidVocabulary, i)
		}
		lex.Priority = append(lex.Priority, w)
	}

	for ci, c := range f.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", errs.ErrInvalidVocabulary, ci)
		}
		for wi, w := range c.Words {
			w = Normalize(w)
			if w == "" {
				return nil, fmt.Errorf("%w: blank word at %s[%d]", errs.ErrInvalidVocabulary, name, wi)
			}
			lex.Vocabulary = append(lex.Vocabulary, Entry{Word: w, Category: name})
		}
	}

	return lex, nil
}

// Load reads and parses a lexicon from r.
func Load(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	return Parse(data)
}

// LoadFile reads and parses the lexicon at path.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	return Parse(data)
}

// Default returns the embedded default lexicon.
func Default() *Lexicon {
	lex, err := Parse(defaultLexicon)
	if err != nil {
		panic(fmt.Sprintf("vocab: embedded lexicon is invalid: %v", err))
	}

	return lex
}
