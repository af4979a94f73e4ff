// Package render writes the human-readable reference document for a code
// table: a per-tier summary with the tier rules, an optional quick-reference
// list, and the complete vocabulary in alphabetical order.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/internal/options"
)

const defaultTitle = "ZQX Code Table"

type config struct {
	title   string
	excl    codespace.ExclusionSet
	columns int
	quick   []string
}

// Option configures Markdown.
type Option = options.Option[*config]

// WithTitle sets the level-1 heading.
func WithTitle(title string) Option {
	return options.NoError(func(c *config) {
		c.title = title
	})
}

// WithExclusionSet lists excl in the tier rules. Defaults to
// codespace.DefaultExclusionSet().
func WithExclusionSet(excl codespace.ExclusionSet) Option {
	return options.NoError(func(c *config) {
		c.excl = excl
	})
}

// WithColumns sets how many entries share one vocabulary table row.
func WithColumns(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("render: columns must be positive, got %d", n)
		}
		c.columns = n

		return nil
	})
}

// WithQuickReference adds a section listing the codes of words, in the given
// order. Words without a code are shown quoted.
func WithQuickReference(words ...string) Option {
	return options.NoError(func(c *config) {
		c.quick = append(c.quick, words...)
	})
}

// Code returns the code of word, or the word in double quotes when a has no
// code for it. Quoting is how unmapped words are written in a message.
func Code(a *assign.Assignment, word string) string {
	if r, ok := a.Lookup(word); ok {
		return r.Code
	}

	return `"` + word + `"`
}

// Markdown writes the reference document for a to w.
func Markdown(w io.Writer, a *assign.Assignment, opts ...Option) error {
	cfg := &config{
		title:   defaultTitle,
		excl:    codespace.DefaultExclusionSet(),
		columns: 3,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", cfg.title)
	writeScheme(bw, a, cfg)
	if len(cfg.quick) > 0 {
		writeQuickReference(bw, a, cfg.quick)
	}
	writeVocabulary(bw, a, cfg.columns)

	return bw.Flush()
}

func writeScheme(w io.Writer, a *assign.Assignment, cfg *config) {
	c := a.Counts()

	fmt.Fprint(w, "## Encoding Scheme\n\n")
	fmt.Fprint(w, "Three tiers of codes, assigned by word frequency:\n\n")
	fmt.Fprint(w, "| Tier | Format | Count | Char length |\n")
	fmt.Fprint(w, "|------|--------|-------|-------------|\n")
	fmt.Fprintf(w, "| 1 | Single char `[a-z0-9]` | %d | 1 |\n", c.Tier1)
	fmt.Fprintf(w, "| 2 | Two chars `[a-z][a-z]` | %d | 2 |\n", c.Tier2)
	fmt.Fprintf(w, "| 3 | Three consonants `[%s]³` | %d | 3 |\n", codespace.Tier3Alphabet, c.Tier3)
	fmt.Fprintf(w, "| | **Total** | **%d** | |\n\n", c.Total())

	excluded := cfg.excl.Words()
	quoted := make([]string, len(excluded))
	for i, e := range excluded {
		quoted[i] = "`" + e + "`"
	}

	fmt.Fprint(w, "**Tier rules:**\n")
	fmt.Fprintf(w, "- Tier-2 codes exclude all 2-letter English words (%d excluded: %s)\n",
		len(excluded), strings.Join(quoted, ", "))
	fmt.Fprint(w, "- Tier-3 codes use consonants only (no `a,e,i,o,u,y`), so no English word can be formed\n")
	fmt.Fprint(w, "- A tier-2 code never equals the first two letters of its word\n")
	fmt.Fprint(w, "- Words without a code are written as quoted strings (`\"kubernetes\"`)\n\n")
	fmt.Fprint(w, "---\n\n")
}

func writeQuickReference(w io.Writer, a *assign.Assignment, words []string) {
	fmt.Fprint(w, "## Quick Reference\n\n")
	fmt.Fprint(w, "| English | ZQX |\n")
	fmt.Fprint(w, "|---------|-----|\n")
	for _, word := range words {
		fmt.Fprintf(w, "| %s | `%s` |\n", escape(word), Code(a, word))
	}
	fmt.Fprint(w, "\n---\n\n")
}

func writeVocabulary(w io.Writer, a *assign.Assignment, columns int) {
	entries := a.Sorted()

	fmt.Fprint(w, "## Complete Vocabulary\n\n")
	fmt.Fprintf(w, "**%d entries**, alphabetical by English word.\n\n", len(entries))

	fmt.Fprint(w, strings.Repeat("| English | ZQX | T ", columns)+"|\n")
	fmt.Fprint(w, strings.Repeat("|---------|-----|---", columns)+"|\n")

	for i := 0; i < len(entries); i += columns {
		var row strings.Builder
		for j := i; j < i+columns; j++ {
			if j < len(entries) {
				r := entries[j]
				fmt.Fprintf(&row, "| %s | `%s` | %d ", escape(r.Word), r.Code, r.Tier)
			} else {
				row.WriteString("| | | ")
			}
		}
		row.WriteString("|\n")
		fmt.Fprint(w, row.String())
	}
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
