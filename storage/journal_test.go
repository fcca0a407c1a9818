package storage_test

import (
	"errors"
	"testing"

	"maestro/storage"
)

func newJournal(t *testing.T) *storage.CommandJournal {
	t.Helper()
	j, err := storage.NewCommandJournal(t.TempDir())
	if err != nil {
		t.Fatalf("NewCommandJournal() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	j := newJournal(t)

	j.Record("set_volume", map[string]any{"volume": 30}, "Volume set to 30%.", nil)
	j.Record("play", map[string]any{}, "", errors.New("player gone"))

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Tool != "play" {
		t.Errorf("first entry tool = %q, want play", entries[0].Tool)
	}
	if entries[0].Error == "" {
		t.Error("failed call recorded without its error")
	}
	if entries[1].Tool != "set_volume" {
		t.Errorf("second entry tool = %q, want set_volume", entries[1].Tool)
	}
	if entries[1].Arguments["volume"] != float64(30) {
		t.Errorf("arguments round-trip: volume = %v, want 30", entries[1].Arguments["volume"])
	}
	if entries[1].Summary != "Volume set to 30%." {
		t.Errorf("summary = %q", entries[1].Summary)
	}
}

func TestJournalRecentLimit(t *testing.T) {
	j := newJournal(t)

	for i := 0; i < 5; i++ {
		j.Record("play", map[string]any{}, "Playback started.", nil)
	}

	entries, err := j.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Recent(3) returned %d entries", len(entries))
	}
}

func TestJournalEmptyRecent(t *testing.T) {
	j := newJournal(t)

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() on empty journal returned %d entries", len(entries))
	}
}
