package openai

import (
	"encoding/json"
	"testing"
)

func TestRepairJSONMissingOpeningQuote(t *testing.T) {
	in := `{"agent_type": "query", action": "search", confidence": 0.9}`
	got := repairJSON(in)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("repaired output does not parse: %v\n%s", err, got)
	}
	if parsed["action"] != "search" {
		t.Fatalf("expected action=search, got %v", parsed["action"])
	}
	if parsed["confidence"] != 0.9 {
		t.Fatalf("expected confidence=0.9, got %v", parsed["confidence"])
	}
}

func TestRepairJSONTrailingCommas(t *testing.T) {
	in := `{"tags": ["go", "testing",], "title": "x",}`
	got := repairJSON(in)

	var parsed struct {
		Tags  []string `json:"tags"`
		Title string   `json:"title"`
	}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("repaired output does not parse: %v\n%s", err, got)
	}
	if len(parsed.Tags) != 2 || parsed.Title != "x" {
		t.Fatalf("unexpected parse result: %+v", parsed)
	}
}

func TestRepairJSONLeavesValidInputAlone(t *testing.T) {
	in := `{"reasoning": "keys like type\": stay, even with a comma , }"}`
	if got := repairJSON(in); got != in {
		t.Fatalf("valid JSON was altered:\n in: %s\nout: %s", in, got)
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```"
	if got := stripCodeFences(in); got != `{"a": 1}` {
		t.Fatalf("unexpected fence strip result: %q", got)
	}
}
