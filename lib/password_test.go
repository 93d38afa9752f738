package lib

import (
	"errors"
	"testing"
)

func TestDecodeArgon2Hash(t *testing.T) {
	// m=65536,t=1,p=4 with a 16-byte salt and 32-byte key
	encoded := "$argon2id$v=19$m=65536,t=1,p=4$c29tZXNhbHRzb21lc2FsdA$GVQKcfO7FBPhiQGCyrTHRYW5JCUh7GEkx7N78BR0BHM"

	parts, err := DecodeArgon2Hash(encoded)
	if err != nil {
		t.Fatalf("DecodeArgon2Hash() failed: %v", err)
	}

	if parts.Memory != 65536 {
		t.Errorf("memory = %d, want 65536", parts.Memory)
	}
	if parts.Time != 1 {
		t.Errorf("time = %d, want 1", parts.Time)
	}
	if parts.Threads != 4 {
		t.Errorf("threads = %d, want 4", parts.Threads)
	}
	if len(parts.Salt) != 16 {
		t.Errorf("salt length = %d, want 16", len(parts.Salt))
	}
	if parts.KeyLen != 32 || len(parts.Hash) != 32 {
		t.Errorf("key length = %d (%d bytes), want 32", parts.KeyLen, len(parts.Hash))
	}
}

func TestDecodeArgon2HashInvalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"empty string", "", ErrInvalidHash},
		{"wrong segment count", "$argon2id$v=19$m=65536,t=1,p=4$saltonly", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"wrong version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeArgon2Hash(tt.encoded); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSecureCompare(t *testing.T) {
	if !SecureCompare([]byte("abc"), []byte("abc")) {
		t.Error("equal slices should compare true")
	}
	if SecureCompare([]byte("abc"), []byte("abd")) {
		t.Error("different slices should compare false")
	}
	if SecureCompare([]byte("abc"), []byte("abcd")) {
		t.Error("different lengths should compare false")
	}
}
