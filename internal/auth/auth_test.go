package auth

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SECRET", "test-signing-key")

	token, expiresAt, err := GenerateJWT("64f0c7a1b2c3d4e5f6a7b8c9", "staff@alternusgallery.com", "Noor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresAt == 0 {
		t.Fatal("expected a non-zero expiry")
	}

	claim, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claim.Email != "staff@alternusgallery.com" || claim.Name != "Noor" {
		t.Fatalf("claims did not round-trip: %+v", claim)
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	t.Setenv("SECRET", "test-signing-key")

	token, _, err := GenerateJWT("64f0c7a1b2c3d4e5f6a7b8c9", "staff@alternusgallery.com", "Noor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("SECRET", "a-different-key")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different signing key")
	}
}

func TestBlacklist(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	if !IsTokenValid(rdb, "some-token") {
		t.Fatal("expected unknown token to be valid")
	}

	if err := InvalidateToken(rdb, "some-token"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if IsTokenValid(rdb, "some-token") {
		t.Fatal("expected blacklisted token to be invalid")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatal("expected mismatched password to fail")
	}
}
