package util

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "Sup3r$ecret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "Sup3r$ecret") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("expected mismatched password to fail")
	}
}
