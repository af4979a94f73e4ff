package table

import (
	"fmt"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/compress"
	"github.com/arloliu/zqx/encoding"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/internal/hash"
	"github.com/arloliu/zqx/internal/wordlist"
)

// Table is a decoded table file.
type Table struct {
	header     Header
	assignment *assign.Assignment
	exclusion  codespace.ExclusionSet
}

// Header returns a copy of the file header.
func (t *Table) Header() Header {
	return t.header
}

// Assignment returns the decoded records.
func (t *Table) Assignment() *assign.Assignment {
	return t.assignment
}

// ExclusionSet returns the embedded exclusion set. ok is false when the table
// was written without WithExclusionSet.
func (t *Table) ExclusionSet() (excl codespace.ExclusionSet, ok bool) {
	return t.exclusion, t.header.HasExclusionSet()
}

// Decode parses a table file.
//
// The payload checksum, entry count and per-tier counts must all match the
// header. Code uniqueness is not checked here; run the verify package on
// Assignment() for that.
func Decode(data []byte) (*Table, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: file of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	t := &Table{}
	if err := t.header.Parse(data[:HeaderSize]); err != nil {
		return nil, err
	}

	packed := data[HeaderSize:]
	if uint64(len(packed)) != uint64(t.header.PayloadSize) {
		return nil, fmt.Errorf("%w: header says %d payload bytes, found %d",
			errs.ErrInvalidPayload, t.header.PayloadSize, len(packed))
	}

	codec, err := compress.GetCodec(t.header.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(packed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}

	if sum := hash.Checksum32(payload); sum != t.header.Checksum {
		return nil, fmt.Errorf("%w: header 0x%08x, payload 0x%08x", errs.ErrChecksumMismatch, t.header.Checksum, sum)
	}

	if t.header.HasExclusionSet() {
		words, n, err := wordlist.DecodeWordList(payload, t.header.GetEndianEngine())
		if err != nil {
			return nil, fmt.Errorf("exclusion set: %w", err)
		}
		if t.exclusion, err = codespace.NewExclusionSet(words...); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
		}
		payload = payload[n:]
	}

	records, err := decodeRecords(payload, int(t.header.EntryCount))
	if err != nil {
		return nil, err
	}

	a, err := assign.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}

	counts := a.Counts()
	if counts.Tier1 != int(t.header.Tier1) || counts.Tier2 != int(t.header.Tier2) || counts.Tier3 != int(t.header.Tier3) {
		return nil, fmt.Errorf("%w: tier counts %d/%d/%d, header %d/%d/%d", errs.ErrInvalidPayload,
			counts.Tier1, counts.Tier2, counts.Tier3, t.header.Tier1, t.header.Tier2, t.header.Tier3)
	}
	t.assignment = a

	return t, nil
}

func decodeRecords(payload []byte, n int) ([]assign.Record, error) {
	dec := encoding.NewVarStringDecoder(payload)
	records := make([]assign.Record, 0, min(n, len(payload)/4+1))

	for i := 0; i < n; i++ {
		var r assign.Record
		var err error

		if r.Word, err = dec.Next(); err != nil {
			return nil, fmt.Errorf("entry %d word: %w", i, err)
		}
		if r.Code, err = dec.Next(); err != nil {
			return nil, fmt.Errorf("entry %d code: %w", i, err)
		}
		tier, err := dec.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("entry %d tier: %w", i, err)
		}
		r.Tier = format.Tier(tier)
		if r.Category, err = dec.Next(); err != nil {
			return nil, fmt.Errorf("entry %d category: %w", i, err)
		}

		records = append(records, r)
	}

	if dec.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d entries", errs.ErrInvalidPayload, dec.Remaining(), n)
	}

	return records, nil
}
