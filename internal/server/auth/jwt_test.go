package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mbelov/microblog/internal/common"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, "a@x.com", "A", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ValidateToken(tok, secret)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("Email mismatch: got %q", claims.Email)
	}
	if claims.Name != "A" {
		t.Fatalf("Name mismatch: got %q", claims.Name)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected IssuedAt and ExpiresAt to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("lifetime mismatch: got %v want %v", got, time.Hour)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, "u@x.com", "U", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ValidateToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, "u2@x.com", "U2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ValidateToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrTokenSignatureInvalid) {
		t.Fatalf("expected common.ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestValidateToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestValidateToken_WrongAlgorithmRejected(t *testing.T) {
	t.Parallel()

	// "none" algorithm tokens must never validate.
	_, err := ValidateToken("eyJhbGciOiJub25lIn0.eyJ1aWQiOjF9.", []byte("k"))
	if err == nil {
		t.Fatal("expected error for alg=none token")
	}
}
