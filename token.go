package fuelabi

import "fmt"

// Token is a runtime value tagged with the same shape as its
// ParamType. Tokens are created per call (encoder input) or per
// response (decoder output) and are not mutated after construction.
//
// This is a sealed interface - only types within this package can
// implement it.
type Token interface {
	// isToken is unexported to seal the interface.
	isToken()
}

// UnitToken is the `()` value. Enum variants of unit type carry it as
// their payload, which keeps unit and non-unit variants uniform.
type UnitToken struct{}

// BoolToken is a boolean value.
type BoolToken bool

// U8Token is a u8 value.
type U8Token uint8

// U16Token is a u16 value.
type U16Token uint16

// U32Token is a u32 value.
type U32Token uint32

// U64Token is a u64 value.
type U64Token uint64

// ByteToken is a single byte value.
type ByteToken uint8

// B256Token is a 256-bit value.
type B256Token [32]byte

// ArrayToken holds the elements of a fixed-length array, in order.
type ArrayToken []Token

// VectorToken holds the elements of a dynamically sized vector.
type VectorToken []Token

// StructToken holds a struct's field values in declaration order. The
// schema lives in the matching StructType, not in the value.
type StructToken []Token

// TupleToken holds a tuple's element values in order.
type TupleToken []Token

// EnumToken is an enum value: the active variant's discriminant, its
// payload, and the enum's variant list. The variants travel with the
// value so its encoded width is known without external schema.
type EnumToken struct {
	Discriminant uint64
	Value        Token
	Variants     *EnumVariants
}

// StringToken is raw textual data paired with the length its type
// requires. Validation (ascii-only, exact length) is deferred to the
// point of use: encoding or conversion, not construction.
type StringToken struct {
	data        string
	expectedLen int
}

// NewStringToken creates a string token. The data is not validated
// here; a too-short or non-ascii value fails when encoded or read.
func NewStringToken(data string, expectedLen int) StringToken {
	return StringToken{data: data, expectedLen: expectedLen}
}

// ExpectedLen returns the length the token's type requires.
func (t StringToken) ExpectedLen() int {
	return t.expectedLen
}

// Value validates the token and returns its textual data.
func (t StringToken) Value() (string, error) {
	if err := t.validate(); err != nil {
		return "", err
	}
	return t.data, nil
}

func (t StringToken) validate() error {
	for i := 0; i < len(t.data); i++ {
		if t.data[i] > 127 {
			return &InvalidDataError{
				Type:   "string",
				Offset: -1,
				Reason: "string data can only have ascii values",
			}
		}
	}
	if len(t.data) != t.expectedLen {
		return &InvalidDataError{
			Type:   "string",
			Offset: -1,
			Reason: fmt.Sprintf("string data has len %d, but the expected len is %d", len(t.data), t.expectedLen),
		}
	}
	return nil
}

func (UnitToken) isToken()   {}
func (BoolToken) isToken()   {}
func (U8Token) isToken()     {}
func (U16Token) isToken()    {}
func (U32Token) isToken()    {}
func (U64Token) isToken()    {}
func (ByteToken) isToken()   {}
func (B256Token) isToken()   {}
func (ArrayToken) isToken()  {}
func (VectorToken) isToken() {}
func (StructToken) isToken() {}
func (TupleToken) isToken()  {}
func (EnumToken) isToken()   {}
func (StringToken) isToken() {}

// Destructuring helpers for binding/codegen collaborators. Each
// returns a typed error when the token has a different shape.

// AsU64 extracts a numeric token as uint64. It accepts any unsigned
// integer token width.
func AsU64(t Token) (uint64, error) {
	switch v := t.(type) {
	case U8Token:
		return uint64(v), nil
	case U16Token:
		return uint64(v), nil
	case U32Token:
		return uint64(v), nil
	case U64Token:
		return uint64(v), nil
	case ByteToken:
		return uint64(v), nil
	default:
		return 0, &TypeMismatchError{Expected: "unsigned integer token", Got: tokenName(t)}
	}
}

// AsBool extracts a BoolToken.
func AsBool(t Token) (bool, error) {
	v, ok := t.(BoolToken)
	if !ok {
		return false, &TypeMismatchError{Expected: "bool token", Got: tokenName(t)}
	}
	return bool(v), nil
}

// AsB256 extracts a B256Token.
func AsB256(t Token) ([32]byte, error) {
	v, ok := t.(B256Token)
	if !ok {
		return [32]byte{}, &TypeMismatchError{Expected: "b256 token", Got: tokenName(t)}
	}
	return [32]byte(v), nil
}

// AsString extracts and validates a StringToken.
func AsString(t Token) (string, error) {
	v, ok := t.(StringToken)
	if !ok {
		return "", &TypeMismatchError{Expected: "string token", Got: tokenName(t)}
	}
	return v.Value()
}

// AsFields extracts the ordered components of a struct, tuple, array
// or vector token.
func AsFields(t Token) ([]Token, error) {
	switch v := t.(type) {
	case StructToken:
		return v, nil
	case TupleToken:
		return v, nil
	case ArrayToken:
		return v, nil
	case VectorToken:
		return v, nil
	default:
		return nil, &TypeMismatchError{Expected: "composite token", Got: tokenName(t)}
	}
}

// tokenName returns the short shape name of a token for diagnostics.
func tokenName(t Token) string {
	switch t.(type) {
	case UnitToken:
		return "()"
	case BoolToken:
		return "bool"
	case U8Token:
		return "u8"
	case U16Token:
		return "u16"
	case U32Token:
		return "u32"
	case U64Token:
		return "u64"
	case ByteToken:
		return "byte"
	case B256Token:
		return "b256"
	case ArrayToken:
		return "array"
	case VectorToken:
		return "vector"
	case StringToken:
		return "string"
	case StructToken:
		return "struct"
	case TupleToken:
		return "tuple"
	case EnumToken:
		return "enum"
	default:
		return "unknown"
	}
}
