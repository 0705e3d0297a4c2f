package password

import (
	"strings"
	"testing"
)

func TestHash_DoesNotEqualPlaintext(t *testing.T) {
	digest, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "pw123" {
		t.Error("digest should never equal the plaintext password")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("digest should be a bcrypt hash, got %q", digest)
	}
}

func TestHash_SamePlaintextProducesDifferentDigests(t *testing.T) {
	d1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	d2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if d1 == d2 {
		t.Error("two hashes of the same plaintext should differ (random salt)")
	}
}

func TestVerify_CorrectPassword(t *testing.T) {
	digest, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !Verify("pw123", digest) {
		t.Error("Verify should succeed for the original plaintext")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	digest, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if Verify("wrong-guess", digest) {
		t.Error("Verify should fail for a wrong password")
	}
}

// 不正な形式のダイジェストはエラーではなくfalseになることを検証
func TestVerify_MalformedDigest_ReturnsFalse(t *testing.T) {
	cases := []string{
		"",
		"not-a-bcrypt-hash",
		"$2a$broken",
	}
	for _, digest := range cases {
		if Verify("pw123", digest) {
			t.Errorf("Verify(%q) should return false for malformed digest", digest)
		}
	}
}
