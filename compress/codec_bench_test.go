package compress

import "testing"

func BenchmarkAllCodecs_Compress(b *testing.B) {
	data := tablePayload(2500)

	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := tablePayload(2500)

	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		packed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Decompress(packed)
			}
		})
	}
}

func BenchmarkAllCodecs_CompressionRatio(b *testing.B) {
	data := tablePayload(2500)

	for _, ct := range allTypes {
		b.Run(ct.String(), func(b *testing.B) {
			var stats Stats
			for b.Loop() {
				_, stats, _ = Measure(ct, data)
			}
			b.ReportMetric(stats.Ratio(), "ratio")
		})
	}
}
