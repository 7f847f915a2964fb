package jsonio

import (
	"strings"
	"testing"
)

const validRecord = `{
	"houseSeed": 2863311530,
	"houseCommitHash": "6f2a0fc1d7bb4a7fd5e3b8c7a1c9d5e7b3a0f1c2d3e4f5a6b7c8d9e0f1a2b3c4",
	"config": {"initialCapital": 1000, "initialPrice": 100, "initialHouseBankroll": 10000000, "tickRateMs": 100},
	"actionLog": [
		{"tickNumber": 10, "timestamp": 1000, "action": {"type": "open_position", "direction": "long", "sizePercent": 0.5, "leverage": 10}},
		{"tickNumber": 50, "timestamp": 5000, "action": {"type": "close_position"}}
	]
}`

func TestDecodeValidRecord(t *testing.T) {
	in, err := Decode(strings.NewReader(validRecord))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.HouseSeed != 2863311530 {
		t.Errorf("houseSeed = %d, want 2863311530", in.HouseSeed)
	}
	if len(in.ActionLog) != 2 {
		t.Fatalf("actionLog length = %d, want 2", len(in.ActionLog))
	}
	if in.ActionLog[0].Action.Type != "open_position" {
		t.Errorf("first action type = %q, want open_position", in.ActionLog[0].Action.Type)
	}
}

func TestDecodeRejectsShortCommitHash(t *testing.T) {
	record := `{"houseSeed": 1, "houseCommitHash": "tooshort", "config": {}, "actionLog": []}`
	_, err := Decode(strings.NewReader(record))
	if err == nil {
		t.Fatal("expected a malformed-input error for a short commit hash")
	}
	if _, ok := err.(*MalformedInputError); !ok {
		t.Errorf("expected *MalformedInputError, got %T", err)
	}
}

func TestDecodeRejectsUnrecognizedActionType(t *testing.T) {
	record := `{
		"houseSeed": 1,
		"houseCommitHash": "0000000000000000000000000000000000000000000000000000000000000000",
		"config": {},
		"actionLog": [{"tickNumber": 0, "timestamp": 0, "action": {"type": "teleport"}}]
	}`
	_, err := Decode(strings.NewReader(record))
	if err == nil {
		t.Fatal("expected a malformed-input error for an unrecognized action type")
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
