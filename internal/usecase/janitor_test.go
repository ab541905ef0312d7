package usecase

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func seedEntry(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func TestJanitorSweep(t *testing.T) {
	dir := t.TempDir()
	seedEntry(t, dir, "xyz-2024-02-01.json")  // well past retention
	seedEntry(t, dir, "xyz-2024-03-01.json")  // one day old
	seedEntry(t, dir, "aapl-2024-03-02.json") // today
	seedEntry(t, dir, "notes.txt")            // not a cache entry
	seedEntry(t, dir, "garbage.json")         // no day suffix

	j := NewJanitor(dir, "", 7, testLogger(t))
	now, _ := time.Parse("2006-01-02", "2024-03-02")

	removed, err := j.Sweep(now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "xyz-2024-02-01.json")); !os.IsNotExist(err) {
		t.Fatal("expired entry should be gone")
	}
	for _, keep := range []string{"xyz-2024-03-01.json", "aapl-2024-03-02.json", "notes.txt", "garbage.json"} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Fatalf("%s should survive the sweep: %v", keep, err)
		}
	}
}

func TestJanitorBadSchedule(t *testing.T) {
	j := NewJanitor(t.TempDir(), "not a schedule", 7, testLogger(t))
	if err := j.Start(); err == nil {
		j.Stop()
		t.Fatal("expected an error for a malformed schedule")
	}
}
