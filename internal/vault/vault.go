// Package vault encrypts auction-site credentials at rest with AES-256-GCM.
//
// Ciphertexts are encoded as hex(iv):hex(tag):hex(data).
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"bid-reconciler/internal/trackingerrors"
)

const (
	keyHexLen = 64
	ivLen     = 12
	tagLen    = 16
)

// Vault encrypts and decrypts credential secrets
type Vault struct {
	aead cipher.AEAD
}

// New creates a vault from a 64-character hexadecimal key
func New(hexKey string) (*Vault, error) {
	if len(hexKey) != keyHexLen {
		return nil, fmt.Errorf("vault: key must be %d hex characters, got %d: %w", keyHexLen, len(hexKey), trackingerrors.ErrConfiguration)
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("vault: key must be hexadecimal: %w", trackingerrors.ErrConfiguration)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("vault: create cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, fmt.Errorf("vault: create gcm: %w", err)
	}

	return &Vault{aead: aead}, nil
}

// Encrypt returns the encoded ciphertext of plainText
func (v *Vault) Encrypt(plainText string) (string, error) {
	iv := make([]byte, ivLen)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("vault: generate iv: %w", err)
	}

	sealed := v.aead.Seal(nil, iv, []byte(plainText), nil)
	data, tag := sealed[:len(sealed)-tagLen], sealed[len(sealed)-tagLen:]

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(data), nil
}

// Decrypt returns the plain text of an encoded ciphertext.
// Malformed or tampered input fails with ErrDecryptionFailed and an empty string.
func (v *Vault) Decrypt(encrypted string) (string, error) {
	parts := strings.Split(encrypted, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("vault: invalid ciphertext format: %w", trackingerrors.ErrDecryptionFailed)
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivLen {
		return "", fmt.Errorf("vault: invalid iv: %w", trackingerrors.ErrDecryptionFailed)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagLen {
		return "", fmt.Errorf("vault: invalid auth tag: %w", trackingerrors.ErrDecryptionFailed)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("vault: invalid payload: %w", trackingerrors.ErrDecryptionFailed)
	}

	plain, err := v.aead.Open(nil, iv, append(data, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("vault: open: %w", trackingerrors.ErrDecryptionFailed)
	}
	return string(plain), nil
}

// Verify reports whether encrypted decrypts to plainText
func (v *Vault) Verify(plainText, encrypted string) bool {
	decrypted, err := v.Decrypt(encrypted)
	if err != nil {
		return false
	}
	return decrypted == plainText
}
