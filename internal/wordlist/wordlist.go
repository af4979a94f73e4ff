// Package wordlist encodes ordered word lists with uint16 length prefixes,
// for sections whose integers follow a file's byte order.
package wordlist

import (
	"fmt"
	"math"

	"github.com/arloliu/zqx/endian"
	"github.com/arloliu/zqx/errs"
)

// EncodeWordList encodes words into a length-prefixed binary format.
// Format: [Count: uint16] [Len1: uint16][Word1: UTF-8] [Len2: uint16][Word2: UTF-8] ...
//
// Returns errs.ErrInvalidPayload if there are more than 65535 words, and
// errs.ErrTextTooLong if a word is longer than 65535 bytes.
func EncodeWordList(words []string, engine endian.EndianEngine) ([]byte, error) {
	if len(words) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: word count %d exceeds maximum %d", errs.ErrInvalidPayload, len(words), math.MaxUint16)
	}

	// 2 bytes for count + (2 bytes + length) per word
	totalSize := 2
	for _, w := range words {
		if len(w) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: word of %d bytes exceeds maximum %d", errs.ErrTextTooLong, len(w), math.MaxUint16)
		}
		totalSize += 2 + len(w)
	}

	buf := make([]byte, totalSize)
	offset := 0

	engine.PutUint16(buf[offset:], uint16(len(words))) //nolint:gosec
	offset += 2

	for _, w := range words {
		engine.PutUint16(buf[offset:], uint16(len(w))) //nolint:gosec
		offset += 2

		copy(buf[offset:], w)
		offset += len(w)
	}

	return buf, nil
}

// DecodeWordList decodes a list written by EncodeWordList from the start of
// data. It returns the words and the number of bytes consumed; data may
// continue past the list.
//
// Returns errs.ErrInvalidPayload when data ends inside the list.
func DecodeWordList(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	offset := 0

	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: cannot read word count (need 2 bytes, have %d)", errs.ErrInvalidPayload, len(data))
	}

	count := int(engine.Uint16(data[offset:]))
	offset += 2

	words := make([]string, 0, min(count, len(data)/2))

	for i := 0; i < count; i++ {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length of word %d at offset %d", errs.ErrInvalidPayload, i, offset)
		}

		n := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+n {
			return nil, 0, fmt.Errorf("%w: word %d of %d bytes at offset %d overruns %d bytes",
				errs.ErrInvalidPayload, i, n, offset, len(data))
		}

		words = append(words, string(data[offset:offset+n]))
		offset += n
	}

	return words, offset, nil
}
