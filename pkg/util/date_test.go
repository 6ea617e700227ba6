package util

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	if _, ok := ParseTime(""); ok {
		t.Fatal("empty string must not parse")
	}
	if _, ok := ParseTime("not-a-time"); ok {
		t.Fatal("garbage must not parse")
	}

	ts, ok := ParseTime("2024-10-10T10:00:00Z")
	if !ok {
		t.Fatal("RFC3339 must parse")
	}
	want := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("got %v, want %v", ts, want)
	}

	ts, ok = ParseTime("1728554400")
	if !ok {
		t.Fatal("unix seconds must parse")
	}
	if ts.Unix() != 1728554400 {
		t.Fatalf("got %d, want 1728554400", ts.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("empty must return default, got %v", got)
	}
	if got := ParseTimeDefault("2024-10-10T10:00:00Z", def); got.Equal(def) {
		t.Fatal("valid input must override default")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("empty: got %d, want 7", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("garbage: got %d, want 7", got)
	}
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestLookbackDate(t *testing.T) {
	now := time.Date(2024, 10, 10, 15, 30, 45, 0, time.UTC)
	got := LookbackDate(now, 1)
	want := time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got = LookbackDate(now, 0)
	want = time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("zero days: got %v, want %v", got, want)
	}
}
