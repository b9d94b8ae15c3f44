package hexconv

import (
	"strings"
	"testing"
)

func TestHalfbyte(t *testing.T) {
	for c, want := range map[byte]byte{
		'0': 0, '9': 9, 'a': 0xa, 'f': 0xf, 'A': 0xA, 'F': 0xF,
	} {
		if got := Halfbyte[c]; got != want {
			t.Errorf("Halfbyte[%q] = %#x, want %#x", c, got, want)
		}
	}

	for _, c := range []byte{0, ' ', '/', ':', '@', 'G', '`', 'g', 'z', 0xFF} {
		if Halfbyte[c] != 0xFF {
			t.Errorf("Halfbyte[%q] = %#x, want the 0xFF sentinel", c, Halfbyte[c])
		}
	}
}

func benchLocal(b *testing.B, str string) {
	b.SetBytes(int64(len(str)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var result uint64

		for j := 0; j < len(str); j++ {
			result = (result << 4) | uint64(Halfbyte[str[j]])
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.Run("short", func(b *testing.B) {
		benchLocal(b, "123456789abcdef")
	})

	b.Run("long", func(b *testing.B) {
		benchLocal(b, strings.Repeat("123456789abcdef", 100))
	})
}
