// Package codespace defines the three code tiers and the fixed data that
// bounds them.
//
// # Tiers
//
//   - Tier 1: one symbol from [a-z0-9], bound by a hand-authored Tier1Table.
//   - Tier 2: two letters [a-z][a-z], minus an ExclusionSet of two-letter words.
//   - Tier 3: three letters from a 20-consonant alphabet (no vowels, no 'y').
//
// The generated sequences are ordered: the first character varies slowest,
// the last fastest. Assignment consumes them front to back, so this order is
// part of the contract.
//
// # Usage
//
//	excl := codespace.DefaultExclusionSet()
//	space, err := codespace.NewSpace(excl)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(space.Tier2Capacity(), space.Tier3Capacity())
//
// All values in this package are immutable after construction and safe for
// concurrent use. Default tables are returned by functions, so every caller
// gets its own copy.
package codespace
