package fuelabi

import (
	"bytes"
	"reflect"
	"testing"
)

func TestParseReceipts(t *testing.T) {
	receipts, err := ParseReceipts([]byte(`[
	  {"type": "CALL", "id": "0x0101010101010101010101010101010101010101010101010101010101010101"},
	  {"type": "LOG", "ra": 42, "rb": 0},
	  {"type": "LOG_DATA", "rb": 1, "data": "0x000000000000000a00000000000000026675656c00000000"},
	  {"type": "RETURN", "val": 7},
	  {"type": "SCRIPT_RESULT", "val": 0}
	]`))
	if err != nil {
		t.Fatalf("ParseReceipts: %v", err)
	}
	if len(receipts) != 5 {
		t.Fatalf("Parsed %d receipts, want 5", len(receipts))
	}
	if receipts[1].Type != ReceiptLog || receipts[1].Ra != 42 {
		t.Errorf("Receipt 1 = %+v, want LOG with ra 42", receipts[1])
	}
	if got := len(receipts[2].Data); got != 24 {
		t.Errorf("LOG_DATA payload is %d bytes, want 24", got)
	}
}

func TestParseReceiptsRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseReceipts([]byte(`{"type": "LOG"`)); err == nil {
		t.Error("Expected parse error")
	}
}

func TestLogsWithType(t *testing.T) {
	c := harnessContract(t)

	structType := &StructType{
		Name: "MyStruct",
		Fields: []ParamType{
			&ArrayType{Elem: U8Type{}, Len: 2},
			StringType{Len: 4},
		},
	}

	receipts := []Receipt{
		{Type: ReceiptCall},
		{Type: ReceiptLog, Ra: 42, Rb: 0},
		{Type: ReceiptLogData, Rb: 1, Data: mustHex(t,
			"000000000000000a"+"0000000000000002"+"6675656c00000000")},
		{Type: ReceiptLog, Ra: 7, Rb: 0},
		{Type: ReceiptReturn, Val: 0},
	}

	t.Run("single-word values from LOG registers", func(t *testing.T) {
		logs, err := c.LogsWithType(receipts, U64Type{})
		if err != nil {
			t.Fatalf("LogsWithType: %v", err)
		}
		want := []Token{U64Token(42), U64Token(7)}
		if !reflect.DeepEqual(logs, want) {
			t.Errorf("Logs = %#v, want %#v", logs, want)
		}
	})

	t.Run("wide values from LOG_DATA payloads", func(t *testing.T) {
		logs, err := c.LogsWithType(receipts, structType)
		if err != nil {
			t.Fatalf("LogsWithType: %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("Got %d logs, want 1", len(logs))
		}
		fields, err := AsFields(logs[0])
		if err != nil {
			t.Fatalf("AsFields: %v", err)
		}
		s, err := AsString(fields[1])
		if err != nil || s != "fuel" {
			t.Errorf("Logged string = %q (%v), want %q", s, err, "fuel")
		}
	})

	t.Run("unlogged type yields empty result", func(t *testing.T) {
		logs, err := c.LogsWithType(receipts, BoolType{})
		if err != nil {
			t.Fatalf("LogsWithType: %v", err)
		}
		if len(logs) != 0 {
			t.Errorf("Got %d logs, want 0", len(logs))
		}
	})

	t.Run("no receipts yields empty result", func(t *testing.T) {
		logs, err := c.LogsWithType(nil, U64Type{})
		if err != nil {
			t.Fatalf("LogsWithType: %v", err)
		}
		if len(logs) != 0 {
			t.Errorf("Got %d logs, want 0", len(logs))
		}
	})
}

func TestReturnPayload(t *testing.T) {
	tests := []struct {
		name     string
		receipts []Receipt
		want     string
	}{
		{
			"RETURN_DATA bytes win",
			[]Receipt{
				{Type: ReceiptCall},
				{Type: ReceiptReturnData, Data: mustHex(t, "0000000000000001"+"000000000000002a")},
			},
			"0000000000000001" + "000000000000002a",
		},
		{
			"RETURN value as one word",
			[]Receipt{
				{Type: ReceiptCall},
				{Type: ReceiptReturn, Val: 42},
			},
			"000000000000002a",
		},
		{
			"no return receipt yields a zero word",
			[]Receipt{{Type: ReceiptScriptResult}},
			"0000000000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReturnPayload(tt.receipts)
			if !bytes.Equal(got, mustHex(t, tt.want)) {
				t.Errorf("ReturnPayload = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeOutputFromReceipts(t *testing.T) {
	c := harnessContract(t)
	receipts := []Receipt{
		{Type: ReceiptCall},
		{Type: ReceiptReturn, Val: 42},
		{Type: ReceiptScriptResult},
	}
	got, err := c.DecodeOutput("get_counter", ReturnPayload(receipts))
	if err != nil {
		t.Fatalf("DecodeOutput: %v", err)
	}
	if got != U64Token(42) {
		t.Errorf("Decoded %#v, want U64Token(42)", got)
	}
}
