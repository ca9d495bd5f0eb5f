package util

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	if got := Normalize("  Mild "); got != "mild" {
		t.Fatalf("expected mild, got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := TruncateString("abcdefgh", 5); got != "abcde..." {
		t.Fatalf("expected abcde..., got %q", got)
	}
	if got := TruncateString("김치찌개 전문점", 4); got != "김치찌개..." {
		t.Fatalf("expected rune-based cut, got %q", got)
	}
}

func TestUniqueStrings(t *testing.T) {
	got := UniqueStrings([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" cozy , upbeat ,, ")
	want := []string{"cozy", "upbeat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if parts := SplitCSV(""); len(parts) != 0 {
		t.Fatalf("expected empty result, got %v", parts)
	}
}
