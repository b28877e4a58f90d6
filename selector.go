package fuelabi

import (
	"crypto/sha256"
	"encoding/hex"
)

// Selector identifies a contract function on the wire: the first four
// bytes of the SHA-256 hash of the function's canonical signature,
// right-padded into one word (high four bytes zero). It is prepended
// verbatim ahead of a call's encoded arguments.
type Selector [WordSize]byte

// Bytes returns the selector as a byte slice.
func (s Selector) Bytes() []byte {
	return s[:]
}

// Hex returns the lowercase hex rendering of the selector word.
func (s Selector) Hex() string {
	return hex.EncodeToString(s[:])
}

// Signature builds the canonical signature string of a function: the
// name followed by the parenthesized, comma-separated canonical type
// names of its parameters, rendered recursively for composites with
// generic parameters shown as their concrete substituted arguments.
func Signature(name string, params []ParamType) string {
	return name + "(" + joinSignatures(params) + ")"
}

// ComputeSelector derives the function selector from a canonical
// signature. The derivation is deterministic: equal signatures always
// produce equal selectors.
func ComputeSelector(name string, params []ParamType) Selector {
	sum := sha256.Sum256([]byte(Signature(name, params)))
	var sel Selector
	copy(sel[4:], sum[:4])
	return sel
}
