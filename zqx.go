// Package zqx assigns compact codes to a vocabulary.
//
// Every word receives exactly one code from a three-tier code space:
//
//   - tier 1: 36 fixed single-character codes (a-z, 0-9) for the most common words
//   - tier 2: two-letter codes a-z × a-z minus an exclusion set of real words
//   - tier 3: three-consonant codes from a 20-letter alphabet
//
// Priority words receive tier-2 codes first; remaining words follow in
// vocabulary order. A word never receives a tier-2 code equal to its own first
// two letters.
//
// # Basic Usage
//
//	res, err := zqx.BuildDefault()
//	if err != nil {
//	    return err
//	}
//	if !res.Report.OK() {
//	    return res.Report.Err()
//	}
//	rec, _ := res.Assignment.Lookup("of")
//	fmt.Println(rec.Code, rec.Tier)
//
// # Package Structure
//
// This package wires the lower level packages for the common case. Use
// codespace, rank, assign and verify directly for finer control, and table,
// store and render for output.
package zqx

import (
	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/verify"
	"github.com/arloliu/zqx/vocab"
)

// Result is a finished, verified assignment.
type Result struct {
	Assignment *assign.Assignment
	Space      *codespace.Space
	Tier1      codespace.Tier1Table
	// Report holds the invariant check results; Build never fails on violations.
	Report *verify.Report
}

// Build assigns codes to lex and verifies the result with every check.
//
// lex.Priority becomes the priority list. opts are applied after it, so
// assign.WithPriority or assign.WithRanker in opts replace it.
func Build(lex *vocab.Lexicon, opts ...assign.Option) (*Result, error) {
	all := make([]assign.Option, 0, len(opts)+1)
	all = append(all, assign.WithPriority(lex.Priority))
	all = append(all, opts...)

	assigner, err := assign.New(all...)
	if err != nil {
		return nil, err
	}

	a, err := assigner.Assign(lex.Vocabulary)
	if err != nil {
		return nil, err
	}

	checks := append([]verify.Option{
		verify.WithVocabulary(lex.Vocabulary),
		verify.WithTier1Table(assigner.Tier1Table()),
	}, verify.All()...)

	return &Result{
		Assignment: a,
		Space:      assigner.Space(),
		Tier1:      assigner.Tier1Table(),
		Report:     verify.CheckAssignment(a, assigner.Space().Exclusion(), checks...),
	}, nil
}

// BuildDefault builds the embedded default lexicon with the default tables.
func BuildDefault() (*Result, error) {
	return Build(vocab.Default())
}
