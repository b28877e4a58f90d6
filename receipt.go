package fuelabi

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ReceiptType discriminates the receipt records a FuelVM execution
// emits.
type ReceiptType string

// Receipt record kinds.
const (
	ReceiptCall         ReceiptType = "CALL"
	ReceiptReturn       ReceiptType = "RETURN"
	ReceiptReturnData   ReceiptType = "RETURN_DATA"
	ReceiptPanic        ReceiptType = "PANIC"
	ReceiptRevert       ReceiptType = "REVERT"
	ReceiptLog          ReceiptType = "LOG"
	ReceiptLogData      ReceiptType = "LOG_DATA"
	ReceiptTransfer     ReceiptType = "TRANSFER"
	ReceiptTransferOut  ReceiptType = "TRANSFER_OUT"
	ReceiptScriptResult ReceiptType = "SCRIPT_RESULT"
	ReceiptMessageOut   ReceiptType = "MESSAGE_OUT"
)

// Receipt is one opaque record produced by executing a transaction.
// Single-word logged values arrive in the Ra register of a LOG
// receipt; wider values arrive as the byte payload of a LOG_DATA
// receipt. Rb carries the declared log type identifier in both cases.
type Receipt struct {
	Type   ReceiptType   `json:"type"`
	ID     hexutil.Bytes `json:"id,omitempty"`
	Ra     uint64        `json:"ra,omitempty"`
	Rb     uint64        `json:"rb,omitempty"`
	Val    uint64        `json:"val,omitempty"`
	Ptr    uint64        `json:"ptr,omitempty"`
	Len    uint64        `json:"len,omitempty"`
	Digest hexutil.Bytes `json:"digest,omitempty"`
	Data   hexutil.Bytes `json:"data,omitempty"`
}

// ParseReceipts parses a JSON array of receipts as returned by a node.
func ParseReceipts(data []byte) ([]Receipt, error) {
	var receipts []Receipt
	if err := json.Unmarshal(data, &receipts); err != nil {
		return nil, fmt.Errorf("fuelabi: parsing receipts: %w", err)
	}
	return receipts, nil
}

// LogsWithType filters log receipts whose declared type identifier
// resolves to the target type and decodes each matching payload,
// preserving receipt order. An empty result means the type was never
// logged; it is not an error.
func (c *Contract) LogsWithType(receipts []Receipt, target ParamType) ([]Token, error) {
	want := target.Signature()
	decoder := NewABIDecoder()

	var out []Token
	for _, r := range receipts {
		if r.Type != ReceiptLog && r.Type != ReceiptLogData {
			continue
		}
		pt, ok := c.logTypes[r.Rb]
		if !ok || pt.Signature() != want {
			continue
		}

		payload := []byte(r.Data)
		if r.Type == ReceiptLog {
			payload = rightAlignedWord(r.Ra)
		}
		tokens, err := decoder.Decode([]ParamType{pt}, payload)
		if err != nil {
			return nil, err
		}
		out = append(out, tokens[0])
	}
	return out, nil
}

// ReturnPayload extracts a call's return payload from its receipts:
// the RETURN_DATA bytes, or the RETURN value as one word, or a zero
// word when the call returned nothing.
func ReturnPayload(receipts []Receipt) []byte {
	for _, r := range receipts {
		switch r.Type {
		case ReceiptReturnData:
			if len(r.Data) > 0 {
				return r.Data
			}
		case ReceiptReturn:
			return rightAlignedWord(r.Val)
		}
	}
	return make([]byte, WordSize)
}
