package crypt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_KEY", "test-key-for-crypt")
	os.Exit(m.Run())
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := Encrypt("11/28")
	require.NoError(t, err)
	assert.NotEqual(t, "11/28", enc)

	plain, err := Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "11/28", plain)
}

func TestEncryptRandomNonce(t *testing.T) {
	a, err := Encrypt("same input")
	require.NoError(t, err)
	b, err := Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptTampered(t *testing.T) {
	enc, err := Encrypt("secret")
	require.NoError(t, err)

	_, err = Decrypt(enc[:len(enc)-4] + "AAAA")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrDecrypt)
}
