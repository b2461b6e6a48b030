package auth

import (
	"strings"
	"testing"
)

// PlainVerifierが平文のまま保存し完全一致で照合することを検証
func TestPlainVerifier(t *testing.T) {
	v := NewPlainVerifier()

	stored, err := v.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if stored != "pw123456" {
		t.Errorf("stored = %q, want plain %q", stored, "pw123456")
	}

	if !v.Verify(stored, "pw123456") {
		t.Error("Verify should succeed for matching password")
	}
	if v.Verify(stored, "PW123456") {
		t.Error("Verify should be case sensitive")
	}
	if v.Verify(stored, "") {
		t.Error("Verify should fail for empty password")
	}
}

// BcryptVerifierがハッシュ化して保存し照合できることを検証
func TestBcryptVerifier(t *testing.T) {
	v := NewBcryptVerifier()

	stored, err := v.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if stored == "pw123456" {
		t.Error("stored value should not be the plain password")
	}
	if !strings.HasPrefix(stored, "$2") {
		t.Errorf("stored = %q, want bcrypt hash", stored)
	}

	if !v.Verify(stored, "pw123456") {
		t.Error("Verify should succeed for matching password")
	}
	if v.Verify(stored, "wrong") {
		t.Error("Verify should fail for wrong password")
	}
}
