package fuelabi

import (
	"errors"
	"fmt"
)

// Category sentinels. Every codec error unwraps to exactly one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrInvalidType indicates a schema could not be resolved into a
	// ParamType: malformed syntax, unknown keyword, missing components.
	ErrInvalidType = errors.New("fuelabi: invalid type")

	// ErrInvalidData indicates a value violated its type's contract at
	// encode or decode time.
	ErrInvalidData = errors.New("fuelabi: invalid data")

	// ErrUnsupported indicates a structurally valid construct the codec
	// cannot encode or decode.
	ErrUnsupported = errors.New("fuelabi: unsupported")
)

// InvalidTypeError reports a type string that does not match the
// resolver's grammar.
type InvalidTypeError struct {
	Type   string // the offending type string
	Reason string
}

func (e *InvalidTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("fuelabi: invalid type %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("fuelabi: invalid type %q", e.Type)
}

func (e *InvalidTypeError) Unwrap() error {
	return ErrInvalidType
}

// InvalidDataError reports a value that violates its type's contract,
// carrying the type and byte offset for diagnostics.
type InvalidDataError struct {
	Type   string // canonical name of the type being processed
	Offset int    // byte offset into the buffer, -1 when encoding
	Reason string
}

func (e *InvalidDataError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("fuelabi: invalid data for %s at offset %d: %s", e.Type, e.Offset, e.Reason)
	}
	return fmt.Sprintf("fuelabi: invalid data for %s: %s", e.Type, e.Reason)
}

func (e *InvalidDataError) Unwrap() error {
	return ErrInvalidData
}

// UnsupportedError reports an operation the codec does not implement
// for a given type.
type UnsupportedError struct {
	Op   string
	Type string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("fuelabi: cannot %s %s", e.Op, e.Type)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// MethodNotFoundError indicates the contract's ABI has no function
// with the requested name.
type MethodNotFoundError struct {
	Contract ContractID
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("fuelabi: method %q not found in contract %s", e.Method, e.Contract.Hex())
}

// ArgumentError indicates an issue with a function argument.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("fuelabi: argument %d for method %q: %v", e.Index, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a token's shape does not match the
// parameter type it is being encoded against.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("fuelabi: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrInvalidData
}
