// Package encoding implements the length-prefixed string layout used in code
// table payloads.
//
// Each string is one length byte followed by its UTF-8 bytes, so a string may
// be at most MaxTextLength bytes long. Single raw bytes (such as a tier) can
// be interleaved with WriteByte / ReadByte.
//
//	enc := encoding.NewVarStringEncoder()
//	defer enc.Reset()
//	_ = enc.Write("zebra")
//	_ = enc.WriteByte(2)
//
//	dec := encoding.NewVarStringDecoder(enc.Bytes())
//	word, _ := dec.Next()
//	tier, _ := dec.ReadByte()
package encoding
