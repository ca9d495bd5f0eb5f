package cache

import (
	"strings"
	"testing"
)

func TestFingerprintKeyOrderInsensitive(t *testing.T) {
	a := FingerprintKey("profile-1", []string{"vid-1", "vid-2", "vid-3"})
	b := FingerprintKey("profile-1", []string{"vid-3", "vid-1", "vid-2"})

	if a != b {
		t.Fatalf("key must not depend on input order: %s vs %s", a, b)
	}
}

func TestFingerprintKeyDiscriminates(t *testing.T) {
	base := FingerprintKey("profile-1", []string{"vid-1", "vid-2"})

	if got := FingerprintKey("profile-2", []string{"vid-1", "vid-2"}); got == base {
		t.Error("different profiles must not share keys")
	}
	if got := FingerprintKey("profile-1", []string{"vid-1"}); got == base {
		t.Error("different video sets must not share keys")
	}
}

func TestFingerprintKeyShape(t *testing.T) {
	key := FingerprintKey("profile-1", []string{"vid-1"})

	if !strings.HasPrefix(key, "brandmatch:fingerprint:profile-1:") {
		t.Fatalf("unexpected key shape: %s", key)
	}
	if suffix := key[strings.LastIndex(key, ":")+1:]; len(suffix) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", suffix)
	}
}

func TestFingerprintKeyDoesNotMutateInput(t *testing.T) {
	ids := []string{"vid-b", "vid-a"}
	FingerprintKey("profile-1", ids)

	if ids[0] != "vid-b" || ids[1] != "vid-a" {
		t.Fatalf("input slice mutated: %v", ids)
	}
}
