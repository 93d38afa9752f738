package services

import (
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

// Fast parameters keep the hashing tests snappy; production uses
// DefaultParams.
var testParams = &structs.ArgonParams{
	Memory:  8 * 1024,
	Time:    1,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

func newTestAuthService() *AuthService {
	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: time.Hour,
		},
	}
	return NewAuthService(cfg, gecho.NewDefaultLogger(), nil)
}

func TestHashAndVerifyPassword(t *testing.T) {
	svc := newTestAuthService()

	hash, err := svc.HashPassword("correct horse battery staple", testParams)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("unexpected hash format: %q", hash)
	}

	valid, err := svc.VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() failed: %v", err)
	}
	if !valid {
		t.Error("correct password should verify")
	}

	valid, err = svc.VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() failed: %v", err)
	}
	if valid {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	svc := newTestAuthService()

	first, err := svc.HashPassword("same password", testParams)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	second, err := svc.HashPassword("same password", testParams)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	svc := newTestAuthService()

	if _, err := svc.VerifyPassword("anything", "not-a-hash"); err == nil {
		t.Error("malformed hash should return an error")
	}
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	svc := newTestAuthService()
	user := &tables.AdminUser{ID: 7, Username: "admin"}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken() failed: %v", err)
	}

	claims, err := lib.ParseToken(token, svc.GetAccessTokenSecret())
	if err != nil {
		t.Fatalf("ParseToken() failed: %v", err)
	}

	if claims.Sub != user.ID {
		t.Errorf("sub = %d, want %d", claims.Sub, user.ID)
	}
	if claims.Username != user.Username {
		t.Errorf("username = %q, want %q", claims.Username, user.Username)
	}
	if claims.Role != AdminRole {
		t.Errorf("role = %q, want %q", claims.Role, AdminRole)
	}
	if !claims.Exp.After(time.Now()) {
		t.Error("token should not be expired immediately after issue")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.GenerateAccessToken(&tables.AdminUser{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() failed: %v", err)
	}

	if _, err := lib.ParseToken(token, "a different secret"); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}
