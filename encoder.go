package fuelabi

import (
	"encoding/binary"
)

// ABIEncoder serializes an ordered token sequence into the FuelVM
// call-data byte layout: a fixed-size head holding all statically
// sized values and offset placeholders, followed by a dynamic tail
// holding vector elements.
type ABIEncoder struct{}

// NewABIEncoder creates a new encoder.
func NewABIEncoder() *ABIEncoder {
	return &ABIEncoder{}
}

// Encode lays the tokens into a buffer. Vector offsets are left as
// placeholders; call Resolve on the result once the buffer's final VM
// memory address is known. Zero tokens produce an empty buffer.
func (e *ABIEncoder) Encode(tokens []Token) (UnresolvedBytes, error) {
	parts, err := encodeTokens(tokens)
	if err != nil {
		return UnresolvedBytes{}, err
	}

	var b layoutBuilder
	b.emit(parts)
	return UnresolvedBytes{data: b.buf, fixups: b.fixups}, nil
}

// UnresolvedBytes is an encoded buffer whose vector offsets have not
// been bound to a memory address yet. The value is immutable; Resolve
// returns a fresh byte slice on every call.
type UnresolvedBytes struct {
	data   []byte
	fixups []offsetFixup
}

// offsetFixup is one reserved offset word: its position in the buffer
// and the buffer-relative position of the dynamic data it points at.
type offsetFixup struct {
	pos    int
	target int
}

// Len returns the encoded length in bytes.
func (u UnresolvedBytes) Len() int {
	return len(u.data)
}

// Resolve patches every reserved offset word with baseOffset plus the
// buffer-relative position of its dynamic data, and returns the final
// bytes. baseOffset is the VM memory address at which the buffer will
// reside. Resolving twice with the same base yields identical output.
func (u UnresolvedBytes) Resolve(baseOffset uint64) []byte {
	out := append([]byte(nil), u.data...)
	for _, f := range u.fixups {
		binary.BigEndian.PutUint64(out[f.pos:f.pos+WordSize], baseOffset+uint64(f.target))
	}
	return out
}

// encodedPart is one layout unit: either inline bytes destined for the
// current region, or a pointer to dynamic data destined for the tail.
type encodedPart struct {
	inline  []byte
	dynamic []encodedPart // non-nil marks a pointer part
}

// layoutBuilder flattens part trees into a single buffer. Pointer
// parts reserve a zeroed word and queue their dynamic data; each
// queued payload is laid out after the region that references it, so
// nested vectors land depth-first behind their parents.
type layoutBuilder struct {
	buf    []byte
	fixups []offsetFixup
}

func (b *layoutBuilder) emit(parts []encodedPart) {
	type pendingDynamic struct {
		fixup int
		parts []encodedPart
	}
	var tail []pendingDynamic

	for _, p := range parts {
		if p.dynamic == nil {
			b.buf = append(b.buf, p.inline...)
			continue
		}
		b.fixups = append(b.fixups, offsetFixup{pos: len(b.buf)})
		b.buf = append(b.buf, make([]byte, WordSize)...)
		tail = append(tail, pendingDynamic{fixup: len(b.fixups) - 1, parts: p.dynamic})
	}

	for _, t := range tail {
		b.fixups[t.fixup].target = len(b.buf)
		b.emit(t.parts)
	}
}

func encodeTokens(tokens []Token) ([]encodedPart, error) {
	var parts []encodedPart
	for _, t := range tokens {
		p, err := encodeToken(t)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p...)
	}
	return parts, nil
}

func encodeToken(t Token) ([]encodedPart, error) {
	switch v := t.(type) {
	case UnitToken:
		return inlineParts(make([]byte, WordSize)), nil
	case BoolToken:
		var b byte
		if v {
			b = 1
		}
		return inlineParts(rightAlignedWord(uint64(b))), nil
	case U8Token:
		return inlineParts(rightAlignedWord(uint64(v))), nil
	case U16Token:
		return inlineParts(rightAlignedWord(uint64(v))), nil
	case U32Token:
		return inlineParts(rightAlignedWord(uint64(v))), nil
	case U64Token:
		return inlineParts(rightAlignedWord(uint64(v))), nil
	case ByteToken:
		return inlineParts(rightAlignedWord(uint64(v))), nil
	case B256Token:
		return inlineParts(append([]byte(nil), v[:]...)), nil
	case StringToken:
		return encodeString(v)
	case ArrayToken:
		return encodeTokens(v)
	case TupleToken:
		return encodeTokens(v)
	case StructToken:
		return encodeTokens(v)
	case EnumToken:
		return encodeEnum(v)
	case VectorToken:
		return encodeVector(v)
	default:
		return nil, &UnsupportedError{Op: "encode", Type: tokenName(t)}
	}
}

// encodeString writes the validated ascii bytes zero-padded out to the
// next word boundary.
func encodeString(t StringToken) ([]encodedPart, error) {
	s, err := t.Value()
	if err != nil {
		return nil, err
	}
	padded := make([]byte, ceilWords(len(s)))
	copy(padded, s)
	return inlineParts(padded), nil
}

// encodeEnum writes the discriminant word, then the active variant's
// payload in a slot sized to the widest variant. Unused trailing bytes
// in the slot stay zero, so the encoded width never depends on which
// variant is active.
func encodeEnum(t EnumToken) ([]encodedPart, error) {
	if t.Variants == nil || t.Variants.Len() == 0 {
		return nil, &InvalidDataError{
			Type:   "enum",
			Offset: -1,
			Reason: "enum token has no variants",
		}
	}
	variant, ok := t.Variants.Select(t.Discriminant)
	if !ok {
		return nil, &InvalidDataError{
			Type:   "enum",
			Offset: -1,
			Reason: "discriminant out of range",
		}
	}

	parts := inlineParts(rightAlignedWord(t.Discriminant))
	payload, err := encodeToken(t.Value)
	if err != nil {
		return nil, err
	}
	parts = append(parts, payload...)

	if pad := t.Variants.MaxVariantSize() - variant.StaticSize(); pad > 0 {
		parts = append(parts, encodedPart{inline: make([]byte, pad)})
	}
	return parts, nil
}

// encodeVector reserves a pointer word for the tail-resident elements
// and writes the cap and len words inline.
func encodeVector(t VectorToken) ([]encodedPart, error) {
	elems, err := encodeTokens(t)
	if err != nil {
		return nil, err
	}
	if elems == nil {
		// An empty vector still reserves a pointer word.
		elems = []encodedPart{}
	}
	n := uint64(len(t))
	return []encodedPart{
		{dynamic: elems},
		{inline: rightAlignedWord(n)}, // cap
		{inline: rightAlignedWord(n)}, // len
	}, nil
}

func inlineParts(b []byte) []encodedPart {
	return []encodedPart{{inline: b}}
}

// rightAlignedWord converts a value to one big-endian word with the
// value in the low-order bytes and zeroes above.
func rightAlignedWord(v uint64) []byte {
	w := make([]byte, WordSize)
	binary.BigEndian.PutUint64(w, v)
	return w
}
