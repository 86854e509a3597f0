package crypto

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptor([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
	}{
		{"access token", "ya29.a0AfH6SMBexampleaccesstoken"},
		{"refresh token", "1//0exampleRefreshToken-abcdef"},
		{"unicode", "टोकन-परीक्षण"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := enc.Encrypt(tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if tt.plaintext != "" && ciphertext == tt.plaintext {
				t.Error("ciphertext equals plaintext")
			}

			decrypted, err := enc.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if decrypted != tt.plaintext {
				t.Errorf("expected %q, got %q", tt.plaintext, decrypted)
			}
		})
	}
}

func TestEncryptProducesUniqueCiphertext(t *testing.T) {
	enc, err := NewEncryptor([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	a, _ := enc.Encrypt("same plaintext")
	b, _ := enc.Encrypt("same plaintext")
	if a == b {
		t.Error("two encryptions of the same plaintext produced the same ciphertext")
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	enc, err := NewEncryptor([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	if _, err := enc.Decrypt("not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := enc.Decrypt("c2hvcnQ="); err == nil {
		t.Error("expected error for too-short ciphertext")
	}
}

func TestIsEncrypted(t *testing.T) {
	enc, err := NewEncryptor([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	ciphertext, _ := enc.Encrypt("some token value")
	if !IsEncrypted(ciphertext) {
		t.Error("expected ciphertext to be detected as encrypted")
	}
	if IsEncrypted("ya29.plain-token") {
		t.Error("plain token detected as encrypted")
	}
	if IsEncrypted("") {
		t.Error("empty string detected as encrypted")
	}
	if IsEncrypted(strings.Repeat("a", 10)) {
		t.Error("short non-base64 string detected as encrypted")
	}
}
