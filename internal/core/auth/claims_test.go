package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/openiam/iam-service/internal/core/domain"
)

var t0 = time.Unix(1700000000, 0).UTC()

func TestClaimsCodec_RoundTrip(t *testing.T) {
	codec := NewClaimsCodec("secret", 30*time.Minute)

	token, err := codec.Encode("alice@example.com", domain.RolePM, "Alice Example", t0)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	claims, err := codec.Decode(token, t0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.Role != domain.RolePM {
		t.Fatalf("role = %q", claims.Role)
	}
	if claims.FullName != "Alice Example" {
		t.Fatalf("full_name = %q", claims.FullName)
	}
	if got, want := claims.ExpiresAt.Time, t0.Add(30*time.Minute); !got.Equal(want) {
		t.Fatalf("expiry = %v, want %v", got, want)
	}
}

func TestClaimsCodec_DecodeBeforeExpiry(t *testing.T) {
	codec := NewClaimsCodec("secret", 30*time.Minute)

	token, err := codec.Encode("bob@example.com", domain.RoleUser, "Bob", t0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := codec.Decode(token, t0.Add(29*time.Minute)); err != nil {
		t.Fatalf("decode just before expiry failed: %v", err)
	}
}

func TestClaimsCodec_Expired(t *testing.T) {
	lifetime := 30 * time.Minute
	codec := NewClaimsCodec("secret", lifetime)

	token, err := codec.Encode("bob@example.com", domain.RoleUser, "Bob", t0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = codec.Decode(token, t0.Add(lifetime+time.Second))
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestClaimsCodec_WrongSecret(t *testing.T) {
	codec := NewClaimsCodec("secret", time.Hour)
	other := NewClaimsCodec("other-secret", time.Hour)

	token, err := codec.Encode("carol@example.com", domain.RoleAdmin, "Carol", t0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = other.Decode(token, t0)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestClaimsCodec_TamperedToken(t *testing.T) {
	codec := NewClaimsCodec("secret", time.Hour)

	token, err := codec.Encode("carol@example.com", domain.RoleAdmin, "Carol", t0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Flip one byte across the token; decoding must never silently succeed.
	// The final byte is excluded: its low-order bits are padding the base64
	// decoder ignores.
	raw := []byte(token)
	for i := 0; i < len(raw)-1; i += 7 {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01
		if _, err := codec.Decode(string(mutated), t0); err == nil {
			t.Fatalf("tampered token at byte %d decoded successfully", i)
		}
	}
}

func TestClaimsCodec_Malformed(t *testing.T) {
	codec := NewClaimsCodec("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Decode(token, t0); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", token, err)
		}
	}
}

func TestClaimsCodec_RejectsUnknownRole(t *testing.T) {
	codec := NewClaimsCodec("secret", time.Hour)

	token, err := codec.Encode("dave@example.com", domain.Role("superuser"), "Dave", t0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := codec.Decode(token, t0); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken for unknown role, got %v", err)
	}
}

func TestNewClaimsCodec_LifetimeFallback(t *testing.T) {
	codec := NewClaimsCodec("secret", 0)
	if codec.Lifetime() != DefaultTokenLifetime {
		t.Fatalf("expected default lifetime, got %v", codec.Lifetime())
	}
}
