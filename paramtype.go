package fuelabi

import (
	"fmt"
	"strings"
)

// WordSize is the fixed unit of the FuelVM binary layout, in bytes.
// Every statically sized value occupies a whole number of words.
const WordSize = 8

// ParamType describes the resolved, schema-independent shape of a
// value. Trees are built once per ABI definition and are read-only
// thereafter.
//
// This is a sealed interface - only types within this package can
// implement it.
type ParamType interface {
	// isParamType is unexported to seal the interface.
	isParamType()

	// StaticSize returns the number of bytes the type occupies in the
	// head region of an encoded buffer. Always a multiple of WordSize.
	StaticSize() int

	// Signature returns the canonical rendering of the type used in
	// function signatures and selector computation.
	Signature() string

	// String returns a human-readable rendering for diagnostics.
	String() string
}

// UnitType is the zero-information type `()`. It still occupies one
// word on the wire so that enum variants of unit type have a slot.
type UnitType struct{}

// BoolType is a boolean, one word, 0 or 1.
type BoolType struct{}

// U8Type is an unsigned 8-bit integer, right-aligned in one word.
type U8Type struct{}

// U16Type is an unsigned 16-bit integer, right-aligned in one word.
type U16Type struct{}

// U32Type is an unsigned 32-bit integer, right-aligned in one word.
type U32Type struct{}

// U64Type is an unsigned 64-bit integer, one full word.
type U64Type struct{}

// ByteType is a single byte, right-aligned in one word.
type ByteType struct{}

// B256Type is a 256-bit value occupying four words.
type B256Type struct{}

// StringType is a fixed-length ascii string `str[n]`, zero-padded to
// the next word boundary.
type StringType struct {
	Len int
}

// ArrayType is a fixed-length homogeneous array `[T; n]`, encoded as
// the concatenation of its elements.
type ArrayType struct {
	Elem ParamType
	Len  int
}

// VectorType is a dynamically sized vector. Its head footprint is
// three words (ptr, cap, len); the elements live in the dynamic tail.
type VectorType struct {
	Elem ParamType
}

// TupleType is an ordered, heterogeneous grouping `(T1, T2, ...)`.
type TupleType struct {
	Elems []ParamType
}

// StructType is a named product type. TypeArgs carries the concrete
// type arguments of a generic instantiation, in declaration order, for
// signature rendering.
type StructType struct {
	Name     string
	TypeArgs []ParamType
	Fields   []ParamType
}

// EnumType is a named sum type over EnumVariants.
type EnumType struct {
	Name     string
	TypeArgs []ParamType
	Variants *EnumVariants
}

func (UnitType) isParamType()    {}
func (BoolType) isParamType()    {}
func (U8Type) isParamType()      {}
func (U16Type) isParamType()     {}
func (U32Type) isParamType()     {}
func (U64Type) isParamType()     {}
func (ByteType) isParamType()    {}
func (B256Type) isParamType()    {}
func (StringType) isParamType()  {}
func (*ArrayType) isParamType()  {}
func (*VectorType) isParamType() {}
func (*TupleType) isParamType()  {}
func (*StructType) isParamType() {}
func (*EnumType) isParamType()   {}

func (UnitType) StaticSize() int   { return WordSize }
func (BoolType) StaticSize() int   { return WordSize }
func (U8Type) StaticSize() int     { return WordSize }
func (U16Type) StaticSize() int    { return WordSize }
func (U32Type) StaticSize() int    { return WordSize }
func (U64Type) StaticSize() int    { return WordSize }
func (ByteType) StaticSize() int   { return WordSize }
func (B256Type) StaticSize() int   { return 4 * WordSize }
func (t StringType) StaticSize() int { return ceilWords(t.Len) }

func (t *ArrayType) StaticSize() int { return t.Len * t.Elem.StaticSize() }

// Three words: ptr, cap, len. The elements are not part of the head.
func (*VectorType) StaticSize() int { return 3 * WordSize }

func (t *TupleType) StaticSize() int {
	size := 0
	for _, e := range t.Elems {
		size += e.StaticSize()
	}
	return size
}

func (t *StructType) StaticSize() int {
	size := 0
	for _, f := range t.Fields {
		size += f.StaticSize()
	}
	return size
}

// One discriminant word plus a slot wide enough for any variant.
func (t *EnumType) StaticSize() int {
	return WordSize + t.Variants.MaxVariantSize()
}

func (UnitType) Signature() string   { return "()" }
func (BoolType) Signature() string   { return "bool" }
func (U8Type) Signature() string     { return "u8" }
func (U16Type) Signature() string    { return "u16" }
func (U32Type) Signature() string    { return "u32" }
func (U64Type) Signature() string    { return "u64" }
func (ByteType) Signature() string   { return "byte" }
func (B256Type) Signature() string   { return "b256" }
func (t StringType) Signature() string { return fmt.Sprintf("str[%d]", t.Len) }

func (t *ArrayType) Signature() string {
	return fmt.Sprintf("a[%s;%d]", t.Elem.Signature(), t.Len)
}

// A vector is the generic Vec struct wrapping a raw ptr/cap pair and a
// length, and its signature renders that desugared shape.
func (t *VectorType) Signature() string {
	elem := t.Elem.Signature()
	return fmt.Sprintf("s<%s>(s<%s>(ptr[%s],u64),u64)", elem, elem, elem)
}

func (t *TupleType) Signature() string {
	return "(" + joinSignatures(t.Elems) + ")"
}

func (t *StructType) Signature() string {
	return "s" + typeArgsSignature(t.TypeArgs) + "(" + joinSignatures(t.Fields) + ")"
}

func (t *EnumType) Signature() string {
	return "e" + typeArgsSignature(t.TypeArgs) + "(" + joinSignatures(t.Variants.Types()) + ")"
}

func (UnitType) String() string   { return "()" }
func (BoolType) String() string   { return "bool" }
func (U8Type) String() string     { return "u8" }
func (U16Type) String() string    { return "u16" }
func (U32Type) String() string    { return "u32" }
func (U64Type) String() string    { return "u64" }
func (ByteType) String() string   { return "byte" }
func (B256Type) String() string   { return "b256" }
func (t StringType) String() string { return fmt.Sprintf("str[%d]", t.Len) }

func (t *ArrayType) String() string {
	return fmt.Sprintf("[%s; %d]", t.Elem, t.Len)
}

func (t *VectorType) String() string {
	return fmt.Sprintf("Vec<%s>", t.Elem)
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *StructType) String() string {
	if t.Name == "" {
		return "struct " + t.Signature()
	}
	return "struct " + t.Name
}

func (t *EnumType) String() string {
	if t.Name == "" {
		return "enum " + t.Signature()
	}
	return "enum " + t.Name
}

// EnumVariants is the ordered variant list of an enum. Discriminants
// are implicit: variant i has discriminant i.
type EnumVariants struct {
	types []ParamType
}

// NewEnumVariants builds the variant list for an enum type. An enum
// must have at least one variant.
func NewEnumVariants(types []ParamType) (*EnumVariants, error) {
	if len(types) == 0 {
		return nil, &InvalidTypeError{Type: "enum", Reason: "enums must have at least one variant"}
	}
	return &EnumVariants{types: types}, nil
}

// MustNewEnumVariants is like NewEnumVariants but panics on error.
func MustNewEnumVariants(types []ParamType) *EnumVariants {
	v, err := NewEnumVariants(types)
	if err != nil {
		panic(err)
	}
	return v
}

// Types returns the variant types in declaration order.
func (v *EnumVariants) Types() []ParamType {
	return v.types
}

// Len returns the number of variants.
func (v *EnumVariants) Len() int {
	return len(v.types)
}

// Select returns the type of the variant with the given discriminant.
func (v *EnumVariants) Select(discriminant uint64) (ParamType, bool) {
	if discriminant >= uint64(len(v.types)) {
		return nil, false
	}
	return v.types[discriminant], true
}

// MaxVariantSize returns the widest variant's static size. The payload
// slot of every encoded value of the enum has this width, regardless
// of which variant is active.
func (v *EnumVariants) MaxVariantSize() int {
	max := 0
	for _, t := range v.types {
		if s := t.StaticSize(); s > max {
			max = s
		}
	}
	return max
}

func joinSignatures(types []ParamType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.Signature()
	}
	return strings.Join(parts, ",")
}

func typeArgsSignature(args []ParamType) string {
	if len(args) == 0 {
		return ""
	}
	return "<" + joinSignatures(args) + ">"
}

// ceilWords rounds n up to the next word boundary.
func ceilWords(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}
