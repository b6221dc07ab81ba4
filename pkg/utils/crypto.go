package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Stored credentials are hex(iv) + delimiter + hex(ciphertext). The delimiter
// must stay outside the hex alphabet so splitting on its first occurrence is
// unambiguous.
const encDelimiter = ":"

var (
	ErrSecretTooShort      = errors.New("encryption secret must be at least 32 characters")
	ErrMalformedCredential = errors.New("malformed encrypted credential")
	ErrDecryptionFailed    = errors.New("credential decryption failed")
)

// DeriveKey hashes the configured secret down to a fixed 32-byte AES-256 key,
// so operators may supply secrets of any length at or above the minimum.
func DeriveKey(secret string) ([]byte, error) {
	if len(secret) < 32 {
		return nil, ErrSecretTooShort
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

// Encrypt encrypts plaintext with AES-256-CBC under a key derived from secret.
// A fresh random IV is generated on every call, so encrypting the same
// plaintext twice yields different outputs.
func Encrypt(plaintext []byte, secret string) (string, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + encDelimiter + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. A missing delimiter or non-hex halves report
// ErrMalformedCredential; a key/IV/ciphertext combination that does not
// validate reports ErrDecryptionFailed.
func Decrypt(encrypted, secret string) (string, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return "", err
	}

	ivHex, ciphertextHex, found := strings.Cut(encrypted, encDelimiter)
	if !found {
		return "", fmt.Errorf("%w: missing delimiter", ErrMalformedCredential)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	if len(iv) != aes.BlockSize || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad block length", ErrMalformedCredential)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
