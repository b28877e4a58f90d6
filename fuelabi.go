// Package fuelabi implements the binary ABI codec for the FuelVM
// calling convention.
//
// The FuelVM is a big-endian stack machine with a fixed 8-byte word.
// This library translates a contract's JSON program ABI into a typed
// model, encodes native argument values into the VM's call-data byte
// layout, and decodes returned and logged byte payloads back into
// typed values.
//
// # Basic Usage
//
// Parse a program ABI, wrap the contract, and build a call:
//
//	abi := fuelabi.MustParseProgramABI(abiJSON)
//	contract, err := fuelabi.NewContract(contractID, abi)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	call, err := contract.Invoke("takes_ints_returns_bool", fuelabi.U32Token(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Selector followed by the encoded arguments, with tail offsets
//	// resolved against the blob's final VM memory address.
//	blob := call.Blob(0)
//
// # Type Model
//
// The codec is driven by two mirrored trees:
//
//   - ParamType: the resolved shape of a value (primitives, fixed
//     arrays, vectors, tuples, structs, enums), produced once per
//     schema by the type resolver and read-only thereafter.
//
//   - Token: a runtime value tagged with the same shape, used both as
//     encoder input and decoder output.
//
// # Encoding Layout
//
// Statically sized values are laid out inline, one right-aligned
// big-endian word per fundamental value, composites as the plain
// concatenation of their parts. Vectors reserve an offset word in the
// head and append their elements to a dynamic tail; Resolve patches
// every reserved offset once the blob's base address is known.
//
// # Receipts and Logs
//
// Contract.LogsWithType filters VM receipts by a declared log type and
// decodes each matching payload, preserving receipt order.
//
// All operations are pure, synchronous transformations; values and
// buffers are never shared or mutated after construction, so it is
// safe to use one Contract from multiple goroutines.
package fuelabi
