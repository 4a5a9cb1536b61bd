package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dexEvents/internal/model"
)

func sampleEvents() []model.Event {
	in, out := 0.0000003, 0.000001001
	return []model.Event{
		{
			Block:           model.Block{BlockNumber: 1, BlockTimestamp: 1234567890},
			TxnID:           "txn1",
			Maker:           "pool1",
			PairID:          "pool1",
			EventType:       model.EventJoin,
			LiquidityChange: &model.LiquidityChange{Amount0: 0.0005, Amount1: 0.000001},
		},
		{
			Block:     model.Block{BlockNumber: 2, BlockTimestamp: 1234567891},
			TxnID:     "txn2",
			Maker:     "pool2",
			PairID:    "pool2",
			EventType: model.EventSwap,
			Swap:      &model.Swap{Asset0In: &in, Asset1Out: &out, PriceNative: 0.2997002997002997},
		},
	}
}

func TestJsonlSinkWritesOneEventPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "events.jsonl")
	sink, err := NewJsonlSink(path)
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	if err := sink.PutEvents(sampleEvents()); err != nil {
		t.Fatalf("put events: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close sink: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var types []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var line map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		types = append(types, line["eventType"].(string))
	}
	if len(types) != 2 || types[0] != "join" || types[1] != "swap" {
		t.Fatalf("unexpected event types: %v", types)
	}
}

func TestJsonlSinkTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte("stale\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	sink, err := NewJsonlSink(path)
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close sink: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty file, got %q", data)
	}
}

func TestJsonlWriterFlushesOnClose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJsonlWriter(&buf)
	if err := sink.PutEvents(sampleEvents()[:1]); err != nil {
		t.Fatalf("put events: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffered output before close")
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close sink: %v", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) || bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
