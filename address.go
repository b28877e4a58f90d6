package fuelabi

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// ContractIDLen is the byte length of a contract id.
const ContractIDLen = 32

// DefaultHRP is the human-readable prefix of Fuel bech32 addresses.
const DefaultHRP = "fuel"

// ContractID is the 32-byte identifier of a deployed contract.
type ContractID [ContractIDLen]byte

// Bytes returns the id as a byte slice.
func (id ContractID) Bytes() []byte {
	return id[:]
}

// Hex returns the 0x-prefixed hex rendering of the id.
func (id ContractID) Hex() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Bech32 returns the id as a bech32m address with the default prefix.
func (id ContractID) Bech32() Bech32Address {
	return NewBech32Address(DefaultHRP, id)
}

// ContractIDFromHex parses a 32-byte id from a hex string, with or
// without the 0x prefix.
func ContractIDFromHex(s string) (ContractID, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return ContractID{}, fmt.Errorf("fuelabi: parsing contract id: %w", err)
	}
	if len(b) != ContractIDLen {
		return ContractID{}, fmt.Errorf("fuelabi: contract id must be %d bytes, got %d", ContractIDLen, len(b))
	}
	var id ContractID
	copy(id[:], b)
	return id, nil
}

// Bech32Address is a bech32m-encoded 32-byte hash with a
// human-readable prefix, the `fuel1...` form shown to users.
type Bech32Address struct {
	hrp  string
	hash [32]byte
}

// NewBech32Address builds an address from a prefix and hash.
func NewBech32Address(hrp string, hash [32]byte) Bech32Address {
	return Bech32Address{hrp: hrp, hash: hash}
}

// ParseBech32Address decodes a bech32m address string.
func ParseBech32Address(s string) (Bech32Address, error) {
	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return Bech32Address{}, fmt.Errorf("fuelabi: parsing bech32 address: %w", err)
	}
	if version != bech32.VersionM {
		return Bech32Address{}, fmt.Errorf("fuelabi: address %q does not use a bech32m checksum", s)
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Bech32Address{}, fmt.Errorf("fuelabi: parsing bech32 address: %w", err)
	}
	if len(converted) != 32 {
		return Bech32Address{}, fmt.Errorf("fuelabi: address payload must be 32 bytes, got %d", len(converted))
	}
	var hash [32]byte
	copy(hash[:], converted)
	return Bech32Address{hrp: hrp, hash: hash}, nil
}

// HRP returns the human-readable prefix.
func (a Bech32Address) HRP() string {
	return a.hrp
}

// Hash returns the 32-byte payload.
func (a Bech32Address) Hash() [32]byte {
	return a.hash
}

// ContractID returns the payload as a contract id.
func (a Bech32Address) ContractID() ContractID {
	return ContractID(a.hash)
}

// String renders the address in its bech32m form.
func (a Bech32Address) String() string {
	converted, err := bech32.ConvertBits(a.hash[:], 8, 5, true)
	if err != nil {
		// 8-to-5 bit expansion of a fixed 32-byte payload cannot fail.
		panic(err)
	}
	s, err := bech32.EncodeM(a.hrp, converted)
	if err != nil {
		panic(err)
	}
	return s
}
