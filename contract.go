package fuelabi

import (
	"fmt"
	"sort"
)

// Method is a resolved entry of a contract's function table.
type Method struct {
	Name     string
	Inputs   []ParamType
	Output   ParamType
	Selector Selector
}

// Signature returns the method's canonical signature string.
func (m *Method) Signature() string {
	return Signature(m.Name, m.Inputs)
}

// Contract wraps a deployed contract's id and resolved ABI. All
// schema resolution happens in NewContract; the resulting value is
// read-only and safe for concurrent use.
type Contract struct {
	id       ContractID
	abi      *ProgramABI
	methods  map[string]*Method
	logTypes map[uint64]ParamType
	hrp      string
}

// ContractOption configures a Contract.
type ContractOption func(*Contract)

// WithHRP overrides the bech32 prefix used when rendering the
// contract's address.
func WithHRP(hrp string) ContractOption {
	return func(c *Contract) {
		c.hrp = hrp
	}
}

// NewContract resolves a program ABI against a contract id. Every
// function input/output and logged type is resolved here, once; a
// schema that cannot be resolved fails with ErrInvalidType.
func NewContract(id ContractID, abi *ProgramABI, opts ...ContractOption) (*Contract, error) {
	c := &Contract{
		id:       id,
		abi:      abi,
		methods:  make(map[string]*Method, len(abi.Functions)),
		logTypes: make(map[uint64]ParamType, len(abi.LoggedTypes)),
		hrp:      DefaultHRP,
	}
	for _, opt := range opts {
		opt(c)
	}

	resolver := NewTypeResolver(abi)

	for _, fn := range abi.Functions {
		inputs := make([]ParamType, len(fn.Inputs))
		for i, in := range fn.Inputs {
			pt, err := resolver.Resolve(in)
			if err != nil {
				return nil, fmt.Errorf("fuelabi: resolving input %d of %q: %w", i, fn.Name, err)
			}
			inputs[i] = pt
		}
		output, err := resolver.Resolve(fn.Output)
		if err != nil {
			return nil, fmt.Errorf("fuelabi: resolving output of %q: %w", fn.Name, err)
		}
		c.methods[fn.Name] = &Method{
			Name:     fn.Name,
			Inputs:   inputs,
			Output:   output,
			Selector: ComputeSelector(fn.Name, inputs),
		}
	}

	for _, lt := range abi.LoggedTypes {
		pt, err := resolver.Resolve(lt.LoggedType)
		if err != nil {
			return nil, fmt.Errorf("fuelabi: resolving logged type %d: %w", lt.LogID, err)
		}
		c.logTypes[lt.LogID] = pt
	}

	return c, nil
}

// ID returns the contract id.
func (c *Contract) ID() ContractID {
	return c.id
}

// Address returns the contract id in its bech32m form.
func (c *Contract) Address() Bech32Address {
	return NewBech32Address(c.hrp, c.id)
}

// Method returns the resolved method with the given name.
func (c *Contract) Method(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// HasMethod returns true if the ABI declares a function with the
// given name.
func (c *Contract) HasMethod(name string) bool {
	_, ok := c.methods[name]
	return ok
}

// MethodNames returns all function names in the ABI, sorted.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke type-checks the argument tokens against the named method and
// encodes them into a CallData ready for a transaction builder.
func (c *Contract) Invoke(methodName string, args ...Token) (*CallData, error) {
	method, ok := c.methods[methodName]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.id, Method: methodName}
	}
	if len(args) != len(method.Inputs) {
		return nil, &ArgumentError{
			Method: methodName,
			Index:  len(args),
			Err:    fmt.Errorf("expected %d arguments, got %d", len(method.Inputs), len(args)),
		}
	}
	for i, arg := range args {
		if err := matchToken(method.Inputs[i], arg); err != nil {
			return nil, &ArgumentError{Method: methodName, Index: i, Err: err}
		}
	}

	encoded, err := NewABIEncoder().Encode(args)
	if err != nil {
		return nil, err
	}

	needsOffset := false
	for _, in := range method.Inputs {
		if passedByReference(in) {
			needsOffset = true
			break
		}
	}

	return &CallData{
		Selector:        method.Selector,
		Args:            encoded,
		NeedsOffsetWord: needsOffset,
	}, nil
}

// MustInvoke is like Invoke but panics on error.
func (c *Contract) MustInvoke(methodName string, args ...Token) *CallData {
	call, err := c.Invoke(methodName, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// DecodeOutput decodes a method's return payload into a token.
func (c *Contract) DecodeOutput(methodName string, data []byte) (Token, error) {
	method, ok := c.methods[methodName]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.id, Method: methodName}
	}
	tokens, err := NewABIDecoder().Decode([]ParamType{method.Output}, data)
	if err != nil {
		return nil, err
	}
	return tokens[0], nil
}

// CallData is a prepared ABI call: the function selector and the
// encoded arguments, plus whether the calling convention requires an
// extra offset word between them because an argument is passed by
// reference.
type CallData struct {
	Selector        Selector
	Args            UnresolvedBytes
	NeedsOffsetWord bool
}

// Blob returns selector ++ resolved arguments, with tail offsets
// bound against base, the VM memory address where the argument bytes
// will reside.
func (cd *CallData) Blob(base uint64) []byte {
	out := make([]byte, 0, WordSize+cd.Args.Len())
	out = append(out, cd.Selector.Bytes()...)
	out = append(out, cd.Args.Resolve(base)...)
	return out
}

// ScriptData assembles the script data region of a call transaction:
// the contract id, the selector, the call-data offset word when the
// method takes by-reference inputs, and the arguments resolved at
// their final address. scriptDataOffset is the VM memory address where
// the script data region begins.
func (c *Contract) ScriptData(call *CallData, scriptDataOffset uint64) []byte {
	argsBase := scriptDataOffset + ContractIDLen + WordSize
	if call.NeedsOffsetWord {
		argsBase += WordSize
	}

	out := make([]byte, 0, ContractIDLen+2*WordSize+call.Args.Len())
	out = append(out, c.id[:]...)
	out = append(out, call.Selector.Bytes()...)
	if call.NeedsOffsetWord {
		out = append(out, rightAlignedWord(argsBase)...)
	}
	out = append(out, call.Args.Resolve(argsBase)...)
	return out
}

// passedByReference reports whether the calling convention passes
// values of this type as a pointer into the call-data region rather
// than in registers. Anything wider than one word qualifies; a
// single-word value rides in a register even when it is a composite.
func passedByReference(pt ParamType) bool {
	return pt.StaticSize() > WordSize
}

// matchToken checks that a token's shape matches a parameter type.
func matchToken(pt ParamType, tok Token) error {
	mismatch := func() error {
		return &TypeMismatchError{Expected: pt.String(), Got: tokenName(tok)}
	}

	switch t := pt.(type) {
	case UnitType:
		if _, ok := tok.(UnitToken); !ok {
			return mismatch()
		}
	case BoolType:
		if _, ok := tok.(BoolToken); !ok {
			return mismatch()
		}
	case U8Type:
		if _, ok := tok.(U8Token); !ok {
			return mismatch()
		}
	case U16Type:
		if _, ok := tok.(U16Token); !ok {
			return mismatch()
		}
	case U32Type:
		if _, ok := tok.(U32Token); !ok {
			return mismatch()
		}
	case U64Type:
		if _, ok := tok.(U64Token); !ok {
			return mismatch()
		}
	case ByteType:
		if _, ok := tok.(ByteToken); !ok {
			return mismatch()
		}
	case B256Type:
		if _, ok := tok.(B256Token); !ok {
			return mismatch()
		}
	case StringType:
		s, ok := tok.(StringToken)
		if !ok {
			return mismatch()
		}
		if s.ExpectedLen() != t.Len {
			return &TypeMismatchError{
				Expected: t.String(),
				Got:      fmt.Sprintf("str[%d]", s.ExpectedLen()),
			}
		}
	case *ArrayType:
		elems, ok := tok.(ArrayToken)
		if !ok {
			return mismatch()
		}
		if len(elems) != t.Len {
			return &TypeMismatchError{
				Expected: t.String(),
				Got:      fmt.Sprintf("array of %d elements", len(elems)),
			}
		}
		for _, e := range elems {
			if err := matchToken(t.Elem, e); err != nil {
				return err
			}
		}
	case *VectorType:
		elems, ok := tok.(VectorToken)
		if !ok {
			return mismatch()
		}
		for _, e := range elems {
			if err := matchToken(t.Elem, e); err != nil {
				return err
			}
		}
	case *TupleType:
		elems, ok := tok.(TupleToken)
		if !ok {
			return mismatch()
		}
		return matchSequence(t.Elems, elems, pt)
	case *StructType:
		fields, ok := tok.(StructToken)
		if !ok {
			return mismatch()
		}
		return matchSequence(t.Fields, fields, pt)
	case *EnumType:
		e, ok := tok.(EnumToken)
		if !ok {
			return mismatch()
		}
		variant, ok := t.Variants.Select(e.Discriminant)
		if !ok {
			return &TypeMismatchError{
				Expected: t.String(),
				Got:      fmt.Sprintf("enum discriminant %d", e.Discriminant),
			}
		}
		return matchToken(variant, e.Value)
	}
	return nil
}

func matchSequence(types []ParamType, tokens []Token, parent ParamType) error {
	if len(tokens) != len(types) {
		return &TypeMismatchError{
			Expected: parent.String(),
			Got:      fmt.Sprintf("composite of %d components", len(tokens)),
		}
	}
	for i, tok := range tokens {
		if err := matchToken(types[i], tok); err != nil {
			return err
		}
	}
	return nil
}
