package cache

import (
	"strings"
	"testing"
)

func TestDailyContentKeyShape(t *testing.T) {
	key := DailyContentKey("user-42", "Aries-Taurus Cusp", "Northern", "2026-03-14")
	want := "daily:v2:user-42:aries-taurus-cusp:northern:2026-03-14"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
}

func TestDailyContentKeyAnonymous(t *testing.T) {
	key := DailyContentKey("", "Leo", "Southern", "2026-03-14")
	if !strings.Contains(key, ":anonymous:") {
		t.Fatalf("expected anonymous segment, got %q", key)
	}
}

func TestDailyContentKeyCarriesSchemaVersion(t *testing.T) {
	key := DailyContentKey("u", "Leo", "Northern", "2026-03-14")
	if !strings.Contains(key, ":v2:") {
		t.Fatalf("key %q does not embed schema version", key)
	}
	// Keys from different schema versions must never collide; the version is
	// part of the key, so a bump is an unconditional miss on old entries.
	old := strings.Replace(key, ":v2:", ":v1:", 1)
	if old == key {
		t.Fatalf("version segment not replaceable in %q", key)
	}
}
