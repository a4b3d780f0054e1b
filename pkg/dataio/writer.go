package dataio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// WriteAll serializes rows to w, one JSON record per line, and closes w.
// The handle is closed even when writing fails; the write error wins
// over the close error.
func WriteAll(w io.WriteCloser, rows []record.Row) error {
	writeErr := writeRows(w, rows)
	closeErr := w.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, closeErr)
	}
	return nil
}

func writeRows(w io.Writer, rows []record.Row) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
