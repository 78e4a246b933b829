package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "validpassword123",
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "password too short",
			password: "short",
			cost:     10,
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password at minimum length",
			password: "123456789012",
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "password too long",
			password: strings.Repeat("a", 73),
			cost:     10,
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, tt.cost)
			if err != tt.wantErr {
				t.Errorf("HashPassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && hash == "" {
				t.Error("HashPassword() returned empty hash for valid password")
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	password := "testpassword123"
	hash, err := HashPassword(password, 10)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "correct password", password: password, wantErr: nil},
		{name: "incorrect password", password: "wrongpassword", wantErr: ErrInvalidPassword},
		{name: "empty password", password: "", wantErr: ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.password, hash)
			if err != tt.wantErr {
				t.Errorf("CheckPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	plaintext, fingerprint, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	// 32 random bytes, unpadded base64url
	if len(plaintext) != 43 {
		t.Errorf("Token length = %d, want 43", len(plaintext))
	}

	again, err := Fingerprint(plaintext)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if again != fingerprint {
		t.Error("Fingerprint(plaintext) does not match returned fingerprint")
	}

	plaintext2, fingerprint2, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("Second GenerateRefreshToken() error = %v", err)
	}
	if plaintext == plaintext2 || fingerprint == fingerprint2 {
		t.Error("Generated tokens should be unique")
	}
}
