package replay

import "testing"

func TestRecordAndDecompressRoundTrip(t *testing.T) {
	r := NewRecorder()
	r.Record([]byte(`{"tick":1}`))
	r.Record([]byte(`{"tick":2}`))

	compressed, err := r.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	raw, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	want := `[{"tick":1},{"tick":2}]`
	if string(raw) != want {
		t.Fatalf("raw = %s, want %s", raw, want)
	}
}

func TestEmptyRecorderProducesEmptyArray(t *testing.T) {
	r := NewRecorder()
	compressed, err := r.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	raw, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("raw = %s, want []", raw)
	}
}
