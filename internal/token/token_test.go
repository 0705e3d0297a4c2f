package token

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	svc := NewService([]byte("super-secret"), time.Hour)

	tok, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userID, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want %q", userID, "user-123")
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = svc.Verify(tok)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewService([]byte("right-secret"), time.Hour)
	verifier := NewService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("u2")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

// 署名部分を1文字だけ改ざんしたトークンが拒否されることを検証
func TestVerify_TamperedSignature(t *testing.T) {
	svc := NewService([]byte("secret"), time.Hour)

	tok, err := svc.Issue("u3")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	last := tok[len(tok)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := tok[:len(tok)-1] + string(replacement)

	if _, err := svc.Verify(tampered); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := NewService([]byte("secret"), time.Hour)

	cases := []string{
		"",
		"not.a.jwt",
		"a.b",
		strings.Repeat("x", 100),
	}
	for _, tok := range cases {
		if _, err := svc.Verify(tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", tok, err)
		}
	}
}

// 期限切れと改ざんが外部から区別できない（同一エラー）ことを検証
func TestVerify_FailureCausesAreIndistinguishable(t *testing.T) {
	svc := NewService([]byte("secret"), -1*time.Second)
	expired, err := svc.Issue("u4")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, errExpired := svc.Verify(expired)
	_, errMalformed := svc.Verify("garbage")

	if errExpired != errMalformed {
		t.Errorf("expired error %v and malformed error %v should be identical", errExpired, errMalformed)
	}
}

func TestIssue_TokenCarriesOnlyIssuedUser(t *testing.T) {
	svc := NewService([]byte("secret"), time.Hour)

	tokA, err := svc.Issue("account-a")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	tokB, err := svc.Issue("account-b")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	gotA, err := svc.Verify(tokA)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	gotB, err := svc.Verify(tokB)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if gotA != "account-a" || gotB != "account-b" {
		t.Errorf("token identities mixed up: got %q and %q", gotA, gotB)
	}
}
