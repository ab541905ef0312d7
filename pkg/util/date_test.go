package util

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	got, ok := ParseDay("2024-03-02")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseDayInvalid(t *testing.T) {
	if _, ok := ParseDay("02/03/2024"); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := ParseDay(""); ok {
		t.Fatalf("expected failure")
	}
}

func TestDayOfRoundTrip(t *testing.T) {
	day := DayOf(time.Date(2024, 3, 2, 15, 4, 5, 0, time.UTC))
	if day != "2024-03-02" {
		t.Fatalf("unexpected day %q", day)
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 100); got != 100 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("25", 100); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := ParseIntDefault("abc", 100); got != 100 {
		t.Fatalf("expected default, got %d", got)
	}
}
