package fuelabi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Property is a schema record describing one value: a type syntax
// string plus, for composite types, the ordered component records.
// Leaf (primitive) properties have no components.
type Property struct {
	Name       string     `json:"name"`
	TypeField  string     `json:"type"`
	Components []Property `json:"components,omitempty"`
}

// TypeDeclaration is one entry of a program ABI's type table.
type TypeDeclaration struct {
	TypeID         int               `json:"typeId"`
	Type           string            `json:"type"`
	Components     []TypeApplication `json:"components"`
	TypeParameters []int             `json:"typeParameters"`
}

// TypeApplication references a declared type, optionally binding the
// declaration's generic parameters to concrete arguments.
type TypeApplication struct {
	Name          string            `json:"name"`
	Type          int               `json:"type"`
	TypeArguments []TypeApplication `json:"typeArguments"`
}

// ABIFunction is one entry of a program ABI's function table.
type ABIFunction struct {
	Name   string            `json:"name"`
	Inputs []TypeApplication `json:"inputs"`
	Output TypeApplication   `json:"output"`
}

// LoggedType binds a VM log id to the type of the logged value.
type LoggedType struct {
	LogID      uint64          `json:"logId"`
	LoggedType TypeApplication `json:"loggedType"`
}

// ProgramABI is the JSON schema the compiler toolchain emits for a
// contract: a type table, a function table, and the logged types.
type ProgramABI struct {
	Types       []TypeDeclaration `json:"types"`
	Functions   []ABIFunction     `json:"functions"`
	LoggedTypes []LoggedType      `json:"loggedTypes"`
}

// ParseProgramABI parses a JSON program ABI.
func ParseProgramABI(data []byte) (*ProgramABI, error) {
	var abi ProgramABI
	if err := json.Unmarshal(data, &abi); err != nil {
		return nil, fmt.Errorf("fuelabi: parsing program ABI: %w", err)
	}
	return &abi, nil
}

// MustParseProgramABI is like ParseProgramABI but panics on error.
// Use only with compile-time constant ABI JSON.
func MustParseProgramABI(data string) *ProgramABI {
	abi, err := ParseProgramABI([]byte(data))
	if err != nil {
		panic(err)
	}
	return abi
}

// primitiveType matches a type string against the primitive keyword
// set. This is the first branch of the resolver grammar.
func primitiveType(s string) (ParamType, bool) {
	switch s {
	case "()":
		return UnitType{}, true
	case "bool":
		return BoolType{}, true
	case "u8":
		return U8Type{}, true
	case "u16":
		return U16Type{}, true
	case "u32":
		return U32Type{}, true
	case "u64":
		return U64Type{}, true
	case "byte":
		return ByteType{}, true
	case "b256":
		return B256Type{}, true
	default:
		return nil, false
	}
}

// parseStringLen matches the fixed-length string syntax `str[n]` and
// returns n.
func parseStringLen(s string) (int, bool) {
	if !strings.HasPrefix(s, "str[") || !strings.HasSuffix(s, "]") {
		return 0, false
	}
	n, err := strconv.Atoi(s[len("str[") : len(s)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// splitArrayType matches the array syntax `[T; n]` and returns the
// element type string and n. The separator search runs from the end so
// nested array element types keep their own separators.
func splitArrayType(s string) (elem string, n int, ok bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", 0, false
	}
	inner := s[1 : len(s)-1]
	idx := strings.LastIndex(inner, "; ")
	if idx < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(inner[idx+2:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return inner[:idx], n, true
}

// ResolveProperty turns a schema Property into a ParamType. Dispatch
// follows an ordered, unambiguous grammar: primitive keywords, then
// `str[n]`, then `[T; n]`, then `(T1, ...)`, then prefixed custom
// types (`struct Name` / `enum Name`).
func ResolveProperty(p Property) (ParamType, error) {
	if pt, ok := primitiveType(p.TypeField); ok {
		return pt, nil
	}
	if _, ok := parseStringLen(p.TypeField); ok {
		return ParseStringProperty(p)
	}
	if _, _, ok := splitArrayType(p.TypeField); ok {
		return ParseArrayProperty(p)
	}
	if strings.HasPrefix(p.TypeField, "(") && strings.HasSuffix(p.TypeField, ")") {
		return parseTupleProperty(p)
	}
	return parseCustomTypeProperty(p)
}

// ParseStringProperty parses the `str[n]` branch of the grammar.
func ParseStringProperty(p Property) (ParamType, error) {
	n, ok := parseStringLen(p.TypeField)
	if !ok {
		return nil, &InvalidTypeError{
			Type:   p.TypeField,
			Reason: "expected parameter type `str[n]`",
		}
	}
	return StringType{Len: n}, nil
}

// ParseArrayProperty parses the `[T; n]` branch of the grammar. The
// element type resolves from the syntax string when primitive, or from
// the property's single child component when custom.
func ParseArrayProperty(p Property) (ParamType, error) {
	elemStr, n, ok := splitArrayType(p.TypeField)
	if !ok {
		return nil, &InvalidTypeError{
			Type:   p.TypeField,
			Reason: "expected parameter type `[T; n]`",
		}
	}

	if pt, ok := primitiveType(elemStr); ok {
		return &ArrayType{Elem: pt, Len: n}, nil
	}
	if len(p.Components) == 0 {
		return nil, &InvalidTypeError{
			Type:   p.TypeField,
			Reason: "array of custom types must have a component",
		}
	}
	elem, err := ResolveProperty(p.Components[0])
	if err != nil {
		return nil, err
	}
	return &ArrayType{Elem: elem, Len: n}, nil
}

// parseTupleProperty parses the `(T1, T2, ...)` branch. The element
// types come from the components, in declared order.
func parseTupleProperty(p Property) (ParamType, error) {
	if len(p.Components) == 0 {
		return nil, &InvalidTypeError{
			Type:   p.TypeField,
			Reason: "tuples must have components",
		}
	}
	elems := make([]ParamType, len(p.Components))
	for i, c := range p.Components {
		pt, err := ResolveProperty(c)
		if err != nil {
			return nil, err
		}
		elems[i] = pt
	}
	return &TupleType{Elems: elems}, nil
}

// parseCustomTypeProperty parses the `struct Name` / `enum Name`
// branch. Components become struct fields or enum variants, in
// declared order.
func parseCustomTypeProperty(p Property) (ParamType, error) {
	isStruct := strings.HasPrefix(p.TypeField, "struct ")
	isEnum := strings.HasPrefix(p.TypeField, "enum ")
	if !isStruct && !isEnum {
		return nil, &InvalidTypeError{
			Type:   p.TypeField,
			Reason: "unknown type syntax",
		}
	}
	if len(p.Components) == 0 {
		return nil, &InvalidTypeError{
			Type:   p.TypeField,
			Reason: "cannot parse custom type with no components",
		}
	}

	components := make([]ParamType, len(p.Components))
	for i, c := range p.Components {
		pt, err := ResolveProperty(c)
		if err != nil {
			return nil, err
		}
		components[i] = pt
	}

	if isStruct {
		return &StructType{
			Name:   strings.TrimPrefix(p.TypeField, "struct "),
			Fields: components,
		}, nil
	}
	variants, err := NewEnumVariants(components)
	if err != nil {
		return nil, err
	}
	return &EnumType{
		Name:     strings.TrimPrefix(p.TypeField, "enum "),
		Variants: variants,
	}, nil
}

// TypeResolver resolves TypeApplications of a program ABI into
// ParamTypes. Generic instantiations are monomorphized: parameters are
// substituted with concrete arguments before grammar dispatch, and a
// memoization table keyed by (type id, substituted argument list)
// hands out one cached tree per instantiation.
//
// The table is populated during schema resolution and read-only
// afterwards; a resolved Contract can be shared between goroutines.
type TypeResolver struct {
	decls  map[int]TypeDeclaration
	memo   map[string]ParamType
	active map[string]bool // in-progress keys, for cycle detection
}

// NewTypeResolver builds a resolver over the ABI's type table.
func NewTypeResolver(abi *ProgramABI) *TypeResolver {
	decls := make(map[int]TypeDeclaration, len(abi.Types))
	for _, d := range abi.Types {
		decls[d.TypeID] = d
	}
	return &TypeResolver{
		decls:  decls,
		memo:   make(map[string]ParamType),
		active: make(map[string]bool),
	}
}

// Resolve resolves a type application into a ParamType.
func (r *TypeResolver) Resolve(app TypeApplication) (ParamType, error) {
	return r.resolve(app, nil)
}

func (r *TypeResolver) resolve(app TypeApplication, subst map[int]ParamType) (ParamType, error) {
	decl, ok := r.decls[app.Type]
	if !ok {
		return nil, &InvalidTypeError{
			Type:   fmt.Sprintf("type id %d", app.Type),
			Reason: "not declared in the ABI type table",
		}
	}

	if strings.HasPrefix(decl.Type, "generic ") {
		if pt, ok := subst[decl.TypeID]; ok {
			return pt, nil
		}
		return nil, &InvalidTypeError{
			Type:   decl.Type,
			Reason: "unbound generic parameter",
		}
	}

	args := make([]ParamType, len(app.TypeArguments))
	for i, ta := range app.TypeArguments {
		pt, err := r.resolve(ta, subst)
		if err != nil {
			return nil, err
		}
		args[i] = pt
	}
	if len(args) != len(decl.TypeParameters) {
		return nil, &InvalidTypeError{
			Type:   decl.Type,
			Reason: fmt.Sprintf("expected %d type arguments, got %d", len(decl.TypeParameters), len(args)),
		}
	}

	key := memoKey(decl.TypeID, args)
	if pt, ok := r.memo[key]; ok {
		return pt, nil
	}
	if r.active[key] {
		return nil, &InvalidTypeError{
			Type:   decl.Type,
			Reason: "cyclic type reference",
		}
	}
	r.active[key] = true
	defer delete(r.active, key)

	childSubst := subst
	if len(decl.TypeParameters) > 0 {
		childSubst = make(map[int]ParamType, len(decl.TypeParameters))
		for i, paramID := range decl.TypeParameters {
			childSubst[paramID] = args[i]
		}
	}

	pt, err := r.resolveDeclaration(decl, args, childSubst)
	if err != nil {
		return nil, err
	}
	r.memo[key] = pt
	return pt, nil
}

func (r *TypeResolver) resolveDeclaration(decl TypeDeclaration, args []ParamType, subst map[int]ParamType) (ParamType, error) {
	if pt, ok := primitiveType(decl.Type); ok {
		return pt, nil
	}
	if n, ok := parseStringLen(decl.Type); ok {
		return StringType{Len: n}, nil
	}

	// Vec<T> is declared as a generic struct but encodes as a vector.
	if decl.Type == "struct Vec" && len(args) == 1 {
		return &VectorType{Elem: args[0]}, nil
	}

	if _, n, ok := splitArrayType(decl.Type); ok {
		if len(decl.Components) != 1 {
			return nil, &InvalidTypeError{
				Type:   decl.Type,
				Reason: "arrays must have exactly one component",
			}
		}
		elem, err := r.resolve(decl.Components[0], subst)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Elem: elem, Len: n}, nil
	}

	if strings.HasPrefix(decl.Type, "(") && strings.HasSuffix(decl.Type, ")") {
		if len(decl.Components) == 0 {
			return nil, &InvalidTypeError{Type: decl.Type, Reason: "tuples must have components"}
		}
		elems, err := r.resolveComponents(decl.Components, subst)
		if err != nil {
			return nil, err
		}
		return &TupleType{Elems: elems}, nil
	}

	isStruct := strings.HasPrefix(decl.Type, "struct ")
	isEnum := strings.HasPrefix(decl.Type, "enum ")
	if !isStruct && !isEnum {
		return nil, &InvalidTypeError{Type: decl.Type, Reason: "unknown type syntax"}
	}
	if len(decl.Components) == 0 {
		return nil, &InvalidTypeError{
			Type:   decl.Type,
			Reason: "cannot parse custom type with no components",
		}
	}

	components, err := r.resolveComponents(decl.Components, subst)
	if err != nil {
		return nil, err
	}

	if isStruct {
		return &StructType{
			Name:     strings.TrimPrefix(decl.Type, "struct "),
			TypeArgs: args,
			Fields:   components,
		}, nil
	}
	variants, err := NewEnumVariants(components)
	if err != nil {
		return nil, err
	}
	return &EnumType{
		Name:     strings.TrimPrefix(decl.Type, "enum "),
		TypeArgs: args,
		Variants: variants,
	}, nil
}

func (r *TypeResolver) resolveComponents(apps []TypeApplication, subst map[int]ParamType) ([]ParamType, error) {
	out := make([]ParamType, len(apps))
	for i, app := range apps {
		pt, err := r.resolve(app, subst)
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}

// memoKey identifies one generic instantiation: the declaration plus
// the canonical signatures of its substituted arguments.
func memoKey(typeID int, args []ParamType) string {
	if len(args) == 0 {
		return strconv.Itoa(typeID)
	}
	return strconv.Itoa(typeID) + "<" + joinSignatures(args) + ">"
}
