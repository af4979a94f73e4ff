// Package assign binds every vocabulary word to a code.
//
// # Algorithm
//
// An Assigner seeds the result with the fixed tier-1 table, removes words that
// are already bound or repeated, moves ranked priority words to the front in
// rank order, and then walks the remaining words once:
//
//   - each word takes the next unused tier-2 code, skipping any code equal to
//     the word's own first two characters (skipped codes are not revisited);
//   - once tier 2 is used up, words take tier-3 codes in order;
//   - running out of tier-3 codes is a fatal error (errs.ErrCodeSpaceExhausted).
//
// The walk is a three-state machine (seek tier 2, tier 3 only, done) with one
// pure transition per word. Cursors only move forward, so priority words hold
// the lexicographically smallest tier-2 codes without backtracking.
//
// # Usage
//
//	a, err := assign.New(assign.WithPriority(lex.Priority))
//	if err != nil {
//	    return err
//	}
//	result, err := a.Assign(lex.Vocabulary)
//	if err != nil {
//	    return err
//	}
//	rec, _ := result.Lookup("zebra")
//	fmt.Println(rec.Code, rec.Tier)
//
// An Assigner holds only immutable configuration and may be shared between
// goroutines. Each Assign call owns its cursors.
package assign
