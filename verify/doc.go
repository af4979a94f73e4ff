// Package verify checks a finished assignment against the properties every
// code table must satisfy.
//
// Check always looks for codes bound to more than one word and for tier-2
// codes that fall inside the exclusion set. Options add the remaining
// checks: completeness against a vocabulary, fidelity to the tier-1 table,
// self-resemblance, and code shape per tier.
//
// Problems are collected into a Report rather than returned one at a time,
// so a single run lists everything that is wrong:
//
//	report := verify.CheckAssignment(result, excl,
//	    verify.WithVocabulary(lex.Vocabulary),
//	    verify.WithTier1Table(codespace.DefaultTier1Table()),
//	    verify.WithSelfResemblance(),
//	)
//	if err := report.Err(); err != nil {
//	    return err
//	}
package verify
