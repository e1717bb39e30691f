package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "s3cret" {
		t.Fatal("HashPassword() returned the plaintext password")
	}

	if !CheckPassword(hash, "s3cret") {
		t.Error("CheckPassword() = false for the correct password")
	}

	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() = true for a wrong password")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if a == b {
		t.Error("HashPassword() produced identical hashes for the same password")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("HashPassword(\"\") expected error, got nil")
	}
}

func TestCheckPassword_NotAHash(t *testing.T) {
	if CheckPassword("admin", "admin") {
		t.Error("CheckPassword() accepted a plaintext value stored as hash")
	}
}
