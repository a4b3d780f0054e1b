package dataio

import (
	"errors"
	"strings"
	"testing"

	"github.com/dvpolyakov/computational-graph/pkg/record"
)

func TestReadAll_ParsesRecordsInOrder(t *testing.T) {
	input := `{"doc_id":"d1","text":"hello"}
{"doc_id":"d2","n":42}
`
	rows, err := ReadAll(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(rows))
	}
	if !rows[0]["doc_id"].Equal(record.String("d1")) {
		t.Errorf("row 0 = %v", rows[0])
	}
	if !rows[1]["n"].Equal(record.Int(42)) {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestReadAll_SkipsShortLines(t *testing.T) {
	input := "\n" + // blank
		"{}\n" + // stripped length 2, skipped
		"  \t \n" + // whitespace only
		`{"a":1}` + "\n"
	rows, err := ReadAll(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("parsed %d rows, want 1 (short lines skipped)", len(rows))
	}
}

func TestReadAll_DecodeError(t *testing.T) {
	_, err := ReadAll(strings.NewReader("not json at all\n"), 0)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestReadAll_EmptyInput(t *testing.T) {
	rows, err := ReadAll(strings.NewReader(""), 0)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("parsed %d rows from empty input", len(rows))
	}
}
