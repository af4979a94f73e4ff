// Package errs defines the sentinel errors returned by zqx packages.
//
// Callers should match errors with errors.Is; most errors are wrapped with
// additional context via fmt.Errorf("%w: ...").
package errs

import "errors"

// Code space and fixed tables.
var (
	ErrInvalidAlphabet    = errors.New("invalid code alphabet")
	ErrInvalidExclusion   = errors.New("invalid exclusion entry")
	ErrInvalidTier1Table  = errors.New("invalid tier-1 table")
	ErrCodeSpaceExhausted = errors.New("code space exhausted")
	ErrWalkFinished       = errors.New("code walk already finished")
)

// Inputs.
var (
	ErrInvalidVocabulary  = errors.New("invalid vocabulary")
	ErrDuplicatePriority  = errors.New("duplicate priority word")
	ErrInvalidPriority    = errors.New("invalid priority word")
	ErrDuplicateWord      = errors.New("word already assigned")
	ErrInvalidTier        = errors.New("invalid tier")
	ErrInvalidRecord      = errors.New("invalid assignment record")
	ErrInvalidCompression = errors.New("invalid compression type")
)

// Invariant violations reported by the verify package.
var (
	ErrCodeCollision        = errors.New("code bound to more than one word")
	ErrExcludedCode         = errors.New("tier-2 code is an excluded word")
	ErrIncompleteAssignment = errors.New("vocabulary word has no code")
	ErrTier1Mismatch        = errors.New("tier-1 binding differs from fixed table")
	ErrSelfResemblance      = errors.New("tier-2 code equals the word's leading letters")
	ErrAlphabetMismatch     = errors.New("code is outside its tier alphabet")
)

// Binary table format.
var (
	ErrInvalidHeaderSize  = errors.New("invalid table header size")
	ErrInvalidMagicNumber = errors.New("invalid table magic number")
	ErrInvalidVersion     = errors.New("unsupported table version")
	ErrInvalidHeaderFlags = errors.New("invalid table header flags")
	ErrInvalidPayload     = errors.New("invalid table payload")
	ErrChecksumMismatch   = errors.New("table checksum mismatch")
	ErrTextTooLong        = errors.New("text exceeds maximum length")
)

// Storage.
var (
	ErrWordNotFound = errors.New("word not found")
	ErrEmptyStore   = errors.New("store holds no assignment")
)
