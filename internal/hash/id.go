// Package hash wraps xxHash64 for assignment fingerprints and table checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum32 folds the xxHash64 of data into 32 bits for fixed-width headers.
func Checksum32(data []byte) uint32 {
	return uint32(xxhash.Sum64(data)) //nolint: gosec
}

// Fingerprint accumulates a stream of string fields into one 64-bit value.
// Each field is terminated by a zero byte, so ("ab","c") and ("a","bc")
// produce different fingerprints.
type Fingerprint struct {
	d *xxhash.Digest
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Add appends fields to the fingerprint.
func (f *Fingerprint) Add(fields ...string) {
	for _, s := range fields {
		_, _ = f.d.WriteString(s)
		_, _ = f.d.Write([]byte{0})
	}
}

// Sum64 returns the current fingerprint value.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}
