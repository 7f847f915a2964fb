package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fairplay-verify/replayverifier/replay"
)

func TestRenderTextIncludesVerdictAndErrors(t *testing.T) {
	result := replay.Result{
		Valid:                false,
		Errors:                []string{"house commitment mismatch"},
		HouseCommitmentValid:  false,
		PlayerCommitmentValid: true,
		SeedCombinationValid:  true,
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "FAILED") {
		t.Error("expected the text report to call out a failed verdict")
	}
	if !strings.Contains(out, "house commitment mismatch") {
		t.Error("expected the text report to list the error")
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	result := replay.Result{
		Valid:                 true,
		HouseCommitmentValid:  true,
		PlayerCommitmentValid: true,
		SeedCombinationValid:  true,
		TicksProcessed:        10,
		ActionsExecuted:       2,
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["valid"] != true {
		t.Errorf("valid = %v, want true", decoded["valid"])
	}
	if decoded["ticksProcessed"].(float64) != 10 {
		t.Errorf("ticksProcessed = %v, want 10", decoded["ticksProcessed"])
	}
}
