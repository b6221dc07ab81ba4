package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := Encrypt([]byte("EAABsbCS1234longlivedpagetoken"), testSecret)
	require.NoError(t, err)

	plaintext, err := Decrypt(encrypted, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "EAABsbCS1234longlivedpagetoken", plaintext)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	first, err := Encrypt([]byte("same token"), testSecret)
	require.NoError(t, err)
	second, err := Encrypt([]byte("same token"), testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, encrypted := range []string{first, second} {
		plaintext, err := Decrypt(encrypted, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "same token", plaintext)
	}
}

func TestEncryptOutputFormat(t *testing.T) {
	encrypted, err := Encrypt([]byte("token"), testSecret)
	require.NoError(t, err)

	iv, ciphertext, found := strings.Cut(encrypted, ":")
	require.True(t, found)
	assert.Len(t, iv, 32) // 16 IV bytes, hex-encoded
	assert.NotEmpty(t, ciphertext)
}

func TestDecryptMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no delimiter", "deadbeefdeadbeefdeadbeefdeadbeef"},
		{"non-hex iv", "zzzz:deadbeefdeadbeefdeadbeefdeadbeef"},
		{"non-hex ciphertext", "deadbeefdeadbeefdeadbeefdeadbeef:not-hex"},
		{"short iv", "dead:deadbeefdeadbeefdeadbeefdeadbeef"},
		{"empty ciphertext", "deadbeefdeadbeefdeadbeefdeadbeef:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.input, testSecret)
			assert.ErrorIs(t, err, ErrMalformedCredential)
		})
	}
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("token"), testSecret)
	require.NoError(t, err)

	// A wrong key almost always trips the padding check; on the rare chance
	// the garbage block ends in valid padding, the plaintext still must not
	// survive.
	plaintext, err := Decrypt(encrypted, "another-secret-another-secret-ab")
	if err != nil {
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	} else {
		assert.NotEqual(t, "token", plaintext)
	}
}

func TestDeriveKeyRejectsShortSecret(t *testing.T) {
	_, err := DeriveKey("too short")
	assert.ErrorIs(t, err, ErrSecretTooShort)

	key, err := DeriveKey(testSecret)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}
