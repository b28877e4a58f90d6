package fuelabi

import (
	"encoding/binary"
	"fmt"
)

// ABIDecoder reconstructs tokens from a byte buffer, driven by a
// ParamType sequence. Decoding is a single pass of cursor-based
// recursive descent mirroring the encoder's layout; each type consumes
// exactly its static size, with no backtracking.
type ABIDecoder struct{}

// NewABIDecoder creates a new decoder.
func NewABIDecoder() *ABIDecoder {
	return &ABIDecoder{}
}

// Decode reads one token per parameter type. Insufficient or malformed
// input fails with an error carrying the type and byte offset; no
// partial token sequence is returned on failure.
func (d *ABIDecoder) Decode(types []ParamType, data []byte) ([]Token, error) {
	c := &cursor{data: data}
	tokens := make([]Token, len(types))
	for i, pt := range types {
		t, err := c.decode(pt)
		if err != nil {
			return nil, err
		}
		tokens[i] = t
	}
	return tokens, nil
}

// cursor tracks the read position inside the buffer being decoded.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) decode(pt ParamType) (Token, error) {
	switch t := pt.(type) {
	case UnitType:
		if _, err := c.take(WordSize, pt); err != nil {
			return nil, err
		}
		return UnitToken{}, nil

	case BoolType:
		w, err := c.take(WordSize, pt)
		if err != nil {
			return nil, err
		}
		switch w[WordSize-1] {
		case 0:
			return BoolToken(false), nil
		case 1:
			return BoolToken(true), nil
		default:
			return nil, c.invalid(pt, WordSize, "boolean word is neither 0 nor 1")
		}

	case U8Type:
		w, err := c.take(WordSize, pt)
		if err != nil {
			return nil, err
		}
		return U8Token(w[WordSize-1]), nil

	case U16Type:
		w, err := c.take(WordSize, pt)
		if err != nil {
			return nil, err
		}
		return U16Token(binary.BigEndian.Uint16(w[WordSize-2:])), nil

	case U32Type:
		w, err := c.take(WordSize, pt)
		if err != nil {
			return nil, err
		}
		return U32Token(binary.BigEndian.Uint32(w[WordSize-4:])), nil

	case U64Type:
		w, err := c.take(WordSize, pt)
		if err != nil {
			return nil, err
		}
		return U64Token(binary.BigEndian.Uint64(w)), nil

	case ByteType:
		w, err := c.take(WordSize, pt)
		if err != nil {
			return nil, err
		}
		return ByteToken(w[WordSize-1]), nil

	case B256Type:
		b, err := c.take(4*WordSize, pt)
		if err != nil {
			return nil, err
		}
		var out [32]byte
		copy(out[:], b)
		return B256Token(out), nil

	case StringType:
		return c.decodeString(t)

	case *ArrayType:
		elems := make([]Token, t.Len)
		for i := range elems {
			e, err := c.decode(t.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return ArrayToken(elems), nil

	case *TupleType:
		elems, err := c.decodeSequence(t.Elems)
		if err != nil {
			return nil, err
		}
		return TupleToken(elems), nil

	case *StructType:
		fields, err := c.decodeSequence(t.Fields)
		if err != nil {
			return nil, err
		}
		return StructToken(fields), nil

	case *EnumType:
		return c.decodeEnum(t)

	case *VectorType:
		// Vector payloads live on the VM heap, not in the flat return
		// buffer, so there is nothing to descend into here.
		return nil, &UnsupportedError{Op: "decode", Type: t.String()}

	default:
		return nil, &UnsupportedError{Op: "decode", Type: pt.String()}
	}
}

func (c *cursor) decodeSequence(types []ParamType) ([]Token, error) {
	out := make([]Token, len(types))
	for i, pt := range types {
		t, err := c.decode(pt)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// decodeString reads exactly the declared length, validates ascii, and
// advances past the word-padding remainder.
func (c *cursor) decodeString(t StringType) (Token, error) {
	b, err := c.take(t.Len, t)
	if err != nil {
		return nil, err
	}
	for i, ch := range b {
		if ch > 127 {
			return nil, c.invalid(t, t.Len-i, "string data can only have ascii values")
		}
	}
	if err := c.skip(ceilWords(t.Len)-t.Len, t); err != nil {
		return nil, err
	}
	return NewStringToken(string(b), t.Len), nil
}

// decodeEnum reads the discriminant word, decodes the selected
// variant's payload, and discards the remainder of the fixed
// max-variant-width slot.
func (c *cursor) decodeEnum(t *EnumType) (Token, error) {
	w, err := c.take(WordSize, t)
	if err != nil {
		return nil, err
	}
	discriminant := binary.BigEndian.Uint64(w)

	variant, ok := t.Variants.Select(discriminant)
	if !ok {
		return nil, c.invalid(t, WordSize,
			fmt.Sprintf("discriminant %d out of range for %d variants", discriminant, t.Variants.Len()))
	}

	payload, err := c.decode(variant)
	if err != nil {
		return nil, err
	}
	if err := c.skip(t.Variants.MaxVariantSize()-variant.StaticSize(), t); err != nil {
		return nil, err
	}

	return EnumToken{
		Discriminant: discriminant,
		Value:        payload,
		Variants:     t.Variants,
	}, nil
}

// take consumes exactly n bytes or fails with the type and offset.
func (c *cursor) take(n int, pt ParamType) ([]byte, error) {
	if c.off+n > len(c.data) {
		return nil, &InvalidDataError{
			Type:   pt.String(),
			Offset: c.off,
			Reason: fmt.Sprintf("need %d bytes, %d remaining", n, len(c.data)-c.off),
		}
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) skip(n int, pt ParamType) error {
	_, err := c.take(n, pt)
	return err
}

// invalid reports malformed content that was already consumed; back
// bytes rewinds the reported offset to where the bad content started.
func (c *cursor) invalid(pt ParamType, back int, reason string) error {
	return &InvalidDataError{
		Type:   pt.String(),
		Offset: c.off - back,
		Reason: reason,
	}
}
