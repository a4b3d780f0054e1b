package dataio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// minLineLength is the shortest stripped line that still counts as a
// record. Shorter lines are skipped without decoding.
const minLineLength = 3

// ReadAll parses every record from r in order. maxLineBytes bounds the
// size of a single input line; pass 0 for the bufio default. The reader
// does not close r — ownership of the handle stays with the caller.
func ReadAll(r io.Reader, maxLineBytes int) ([]record.Row, error) {
	sc := bufio.NewScanner(r)
	if maxLineBytes > 0 {
		sc.Buffer(make([]byte, 0, min(64*1024, maxLineBytes)), maxLineBytes)
	}

	var rows []record.Row
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if len(line) < minLineLength {
			continue
		}
		var row record.Row
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", lineNo, ErrDecode, err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return rows, nil
}
