package hasher

import "testing"

func TestHash(t *testing.T) {
	// Known SHA-256 vector.
	got := Hash("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("Hash(%q) = %s, want %s", "hello", got, want)
	}
}

func TestHashDeterministic(t *testing.T) {
	if Hash("token") != Hash("token") {
		t.Error("same input produced different digests")
	}
	if Hash("token") == Hash("token2") {
		t.Error("different inputs produced the same digest")
	}
}

func BenchmarkHash(b *testing.B) {
	for b.Loop() {
		Hash("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9")
	}
}
