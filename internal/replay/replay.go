// Package replay records and plays back a match as a gzip-compressed
// JSON array of per-tick delta messages, matching the original
// engine's on-disk replay format exactly.
package replay

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Recorder collects raw JSON message bytes, one per tick, and joins
// them into a single JSON array on Finish the same way the original
// ReplayRecorder does: by hand, not by re-marshaling.
type Recorder struct {
	messages [][]byte
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one tick's already-marshaled JSON message.
func (r *Recorder) Record(msgJSON []byte) {
	r.messages = append(r.messages, msgJSON)
}

// Finish joins every recorded message into a JSON array literal and
// gzip-compresses it.
func (r *Recorder) Finish() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, m := range r.messages {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(m)
	}
	buf.WriteByte(']')

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("replay finish: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("replay finish: %w", err)
	}
	return gz.Bytes(), nil
}

// Decompress is the exact inverse of Finish: gunzip back to the raw
// JSON array bytes.
func Decompress(compressed []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("replay decompress: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("replay decompress: %w", err)
	}
	return data, nil
}
