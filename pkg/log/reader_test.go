package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), AttemptID: "a-1", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryMessage},
		{Timestamp: time.Now(), AttemptID: "a-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Timestamp: time.Now(), AttemptID: "a-1", Layer: LayerSession, Category: CategoryState},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].Direction != DirectionOut {
		t.Errorf("first event direction = %v, want OUT", read[0].Direction)
	}
	if read[2].Category != CategoryState {
		t.Errorf("last event category = %v, want STATE", read[2].Category)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file: got %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.plog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.plog")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err == nil || err == io.EOF {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []Event{
		{Timestamp: base, AttemptID: "a-1", HostID: "h1", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryMessage},
		{Timestamp: base.Add(time.Second), AttemptID: "a-1", HostID: "h1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Timestamp: base.Add(2 * time.Second), AttemptID: "a-2", HostID: "h2", Layer: LayerSession, Category: CategoryError},
		{Timestamp: base.Add(3 * time.Second), AttemptID: "a-2", HostID: "h2", Layer: LayerSession, Category: CategoryState},
	})

	in := DirectionIn
	session := LayerSession
	errCat := CategoryError
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"attempt", Filter{AttemptID: "a-2"}, 2},
		{"host", Filter{HostID: "h1"}, 2},
		{"direction", Filter{Direction: &in}, 1},
		{"layer", Filter{Layer: &session}, 2},
		{"category", Filter{Category: &errCat}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"no match", Filter{AttemptID: "a-9"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			events, err := reader.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}
