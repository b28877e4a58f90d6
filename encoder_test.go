package fuelabi

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func mustEncode(t *testing.T, tokens ...Token) UnresolvedBytes {
	t.Helper()
	encoded, err := NewABIEncoder().Encode(tokens)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return encoded
}

func encodeHex(t *testing.T, tokens ...Token) string {
	t.Helper()
	return hex.EncodeToString(mustEncode(t, tokens...).Resolve(0))
}

func TestEncodePrimitives(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"unit", UnitToken{}, "0000000000000000"},
		{"bool true", BoolToken(true), "0000000000000001"},
		{"bool false", BoolToken(false), "0000000000000000"},
		{"u8", U8Token(0xff), "00000000000000ff"},
		{"u16", U16Token(0xbeef), "000000000000beef"},
		{"u32", U32Token(42), "000000000000002a"},
		{"u64", U64Token(0xdeadbeefcafe), "0000deadbeefcafe"},
		{"byte", ByteToken(0x2a), "000000000000002a"},
		{
			"string pads to word boundary",
			NewStringToken("fuel", 4),
			"6675656c00000000",
		},
		{
			"string spanning two words",
			NewStringToken("fuel rocks", 10),
			"6675656c20726f636b73000000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeHex(t, tt.tok); got != tt.want {
				t.Errorf("Encoded %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeB256(t *testing.T) {
	var v [32]byte
	v[0] = 0x01
	v[31] = 0x02
	got := encodeHex(t, B256Token(v))
	want := "0100000000000000000000000000000000000000000000000000000000000002"
	if got != want {
		t.Errorf("Encoded %s, want %s", got, want)
	}
}

func TestEncodeZeroTokens(t *testing.T) {
	encoded := mustEncode(t)
	if encoded.Len() != 0 {
		t.Errorf("Expected empty buffer, got %d bytes", encoded.Len())
	}
	if len(encoded.Resolve(0)) != 0 {
		t.Error("Resolve of empty buffer should be empty")
	}
}

func TestEncodeStruct(t *testing.T) {
	// struct { foo: [u8; 2], bar: str[4] } with foo = [10, 2], bar = "fuel"
	got := encodeHex(t, StructToken{
		ArrayToken{U8Token(10), U8Token(2)},
		NewStringToken("fuel", 4),
	})
	want := "000000000000000a" + "0000000000000002" + "6675656c00000000"
	if got != want {
		t.Errorf("Encoded %s, want %s", got, want)
	}
}

func TestEncodeStaticConcatenation(t *testing.T) {
	// Encoding two static tokens together equals the concatenation of
	// their individual encodings.
	first := U16Token(10)
	second := StructToken{BoolToken(true), B256Token{}}

	joined := mustEncode(t, first, second).Resolve(0)
	separate := append(mustEncode(t, first).Resolve(0), mustEncode(t, second).Resolve(0)...)

	if !bytes.Equal(joined, separate) {
		t.Errorf("encode([a, b]) = %x, want %x", joined, separate)
	}
}

func TestEncodeEnum(t *testing.T) {
	u32OrBool, err := NewEnumVariants([]ParamType{U32Type{}, BoolType{}})
	if err != nil {
		t.Fatalf("NewEnumVariants: %v", err)
	}

	t.Run("first variant active", func(t *testing.T) {
		got := encodeHex(t, EnumToken{Discriminant: 0, Value: U32Token(42), Variants: u32OrBool})
		want := "0000000000000000" + "000000000000002a"
		if got != want {
			t.Errorf("Encoded %s, want %s", got, want)
		}
	})

	t.Run("second variant active", func(t *testing.T) {
		got := encodeHex(t, EnumToken{Discriminant: 1, Value: BoolToken(true), Variants: u32OrBool})
		want := "0000000000000001" + "0000000000000001"
		if got != want {
			t.Errorf("Encoded %s, want %s", got, want)
		}
	})

	t.Run("discriminant out of range", func(t *testing.T) {
		_, err := NewABIEncoder().Encode([]Token{
			EnumToken{Discriminant: 2, Value: UnitToken{}, Variants: u32OrBool},
		})
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("Expected ErrInvalidData, got %v", err)
		}
	})
}

func TestEncodeEnumFixedWidth(t *testing.T) {
	// The encoded width is 8 + the widest variant's size, no matter
	// which variant is active; narrow variants get trailing zeros.
	narrowOrWide, err := NewEnumVariants([]ParamType{U64Type{}, B256Type{}})
	if err != nil {
		t.Fatalf("NewEnumVariants: %v", err)
	}
	wantLen := WordSize + narrowOrWide.MaxVariantSize()

	t.Run("narrow variant padded to slot width", func(t *testing.T) {
		encoded := mustEncode(t, EnumToken{Discriminant: 0, Value: U64Token(7), Variants: narrowOrWide})
		if encoded.Len() != wantLen {
			t.Fatalf("Encoded %d bytes, want %d", encoded.Len(), wantLen)
		}
		got := hex.EncodeToString(encoded.Resolve(0))
		want := "0000000000000000" + "0000000000000007" + hex.EncodeToString(make([]byte, 24))
		if got != want {
			t.Errorf("Encoded %s, want %s", got, want)
		}
	})

	t.Run("wide variant fills the slot", func(t *testing.T) {
		encoded := mustEncode(t, EnumToken{Discriminant: 1, Value: B256Token{}, Variants: narrowOrWide})
		if encoded.Len() != wantLen {
			t.Errorf("Encoded %d bytes, want %d", encoded.Len(), wantLen)
		}
	})
}

func TestEncodeStringValidation(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		_, err := NewABIEncoder().Encode([]Token{NewStringToken("fuel", 5)})
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("Expected ErrInvalidData, got %v", err)
		}
	})

	t.Run("non-ascii", func(t *testing.T) {
		_, err := NewABIEncoder().Encode([]Token{NewStringToken("fu\xffl", 4)})
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("Expected ErrInvalidData, got %v", err)
		}
	})
}

func TestEncodeVector(t *testing.T) {
	encoded := mustEncode(t, VectorToken{U64Token(1), U64Token(2)})

	t.Run("head reserves ptr, cap and len words", func(t *testing.T) {
		// 3 head words + 2 element words.
		if encoded.Len() != 5*WordSize {
			t.Fatalf("Encoded %d bytes, want %d", encoded.Len(), 5*WordSize)
		}
	})

	t.Run("resolve against base zero", func(t *testing.T) {
		got := hex.EncodeToString(encoded.Resolve(0))
		want := "0000000000000018" + // ptr: elements start at byte 24
			"0000000000000002" + // cap
			"0000000000000002" + // len
			"0000000000000001" +
			"0000000000000002"
		if got != want {
			t.Errorf("Resolved %s, want %s", got, want)
		}
	})

	t.Run("resolve shifts offsets by base", func(t *testing.T) {
		resolved := encoded.Resolve(0x100)
		want := "0000000000000118"
		if got := hex.EncodeToString(resolved[:WordSize]); got != want {
			t.Errorf("Pointer word = %s, want %s", got, want)
		}
	})

	t.Run("resolve is idempotent", func(t *testing.T) {
		first := encoded.Resolve(64)
		second := encoded.Resolve(64)
		if !bytes.Equal(first, second) {
			t.Error("Resolving twice with one base should be byte-identical")
		}
	})
}

func TestEncodeNestedVectors(t *testing.T) {
	encoded := mustEncode(t, VectorToken{
		VectorToken{U8Token(1)},
		VectorToken{U8Token(2)},
	})

	resolved := encoded.Resolve(0)

	// Layout: outer head (ptr, cap, len) at 0..24, inner heads at
	// 24..72, then each inner element region depth-first.
	wantOffsets := []struct {
		pos    int
		target uint64
	}{
		{0, 24},  // outer ptr -> inner heads
		{24, 72}, // first inner ptr -> its element
		{48, 80}, // second inner ptr -> its element
	}
	for _, w := range wantOffsets {
		got := beWord(resolved[w.pos : w.pos+WordSize])
		if got != w.target {
			t.Errorf("Offset word at %d = %d, want %d", w.pos, got, w.target)
		}
	}

	if got := beWord(resolved[72:80]); got != 1 {
		t.Errorf("First inner element = %d, want 1", got)
	}
	if got := beWord(resolved[80:88]); got != 2 {
		t.Errorf("Second inner element = %d, want 2", got)
	}
}

func TestEncodeEmptyVector(t *testing.T) {
	encoded := mustEncode(t, VectorToken{})
	resolved := encoded.Resolve(0)
	if len(resolved) != 3*WordSize {
		t.Fatalf("Encoded %d bytes, want %d", len(resolved), 3*WordSize)
	}
	// ptr points just past the head; cap and len are zero.
	if got := beWord(resolved[0:8]); got != 24 {
		t.Errorf("Pointer word = %d, want 24", got)
	}
	if got := beWord(resolved[8:16]); got != 0 {
		t.Errorf("Cap word = %d, want 0", got)
	}
	if got := beWord(resolved[16:24]); got != 0 {
		t.Errorf("Len word = %d, want 0", got)
	}
}

// beWord reads one big-endian word.
func beWord(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
