// Package crypto encrypts investor contact details at rest with fernet tokens.
package crypto

import (
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
)

// tokenPrefix marks a stored value as a fernet token. Values without it are plaintext.
const tokenPrefix = "fernet:"

// FieldCipher encrypts and decrypts single string columns.
// A cipher without a key stores values as plaintext.
type FieldCipher struct {
	key *fernet.Key
}

// NewFieldCipher parses a base64 fernet key. An empty key disables encryption.
func NewFieldCipher(encodedKey string) (*FieldCipher, error) {
	if encodedKey == "" {
		return &FieldCipher{}, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &FieldCipher{key: key}, nil
}

// GenerateKey returns a new random base64 fernet key.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

// Enabled reports whether values are encrypted.
func (c *FieldCipher) Enabled() bool {
	return c != nil && c.key != nil
}

// Encrypt returns the value to store. Empty strings are stored as-is.
func (c *FieldCipher) Encrypt(plain string) (string, error) {
	if plain == "" || !c.Enabled() {
		return plain, nil
	}
	tok, err := fernet.EncryptAndSign([]byte(plain), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt field: %w", err)
	}
	return tokenPrefix + string(tok), nil
}

// Decrypt reverses Encrypt. Plaintext values written before a key was configured are returned
// unchanged.
func (c *FieldCipher) Decrypt(stored string) (string, error) {
	tok, ok := strings.CutPrefix(stored, tokenPrefix)
	if !ok {
		return stored, nil
	}
	if !c.Enabled() {
		return "", fmt.Errorf("%w: no encryption key configured", apperrors.ErrDecryptionFailed)
	}
	plain := fernet.VerifyAndDecrypt([]byte(tok), 0, []*fernet.Key{c.key})
	if plain == nil {
		return "", apperrors.ErrDecryptionFailed
	}
	return string(plain), nil
}
