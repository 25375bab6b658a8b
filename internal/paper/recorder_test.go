package paper

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/execution"
)

func TestJSONLRecorder(t *testing.T) {
	tmp := t.TempDir()
	path := tmp + "/fills.jsonl"

	recorder, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	fill := execution.Fill{InstrumentID: "$NVDA_call_90_500", Symbol: "NVDA", Type: "call", Quantity: 1, Premium: 8, Tick: 100}
	recorder.Record(fill)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatalf("expected one line in recorder output")
	}
	var decoded execution.Fill
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded.InstrumentID != fill.InstrumentID || decoded.Premium != fill.Premium {
		t.Fatalf("unexpected decoded fill")
	}
}
