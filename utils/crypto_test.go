package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey("correct horse")
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := DeriveKey("correct horse")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := DeriveKey("battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = DeriveKey("")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)

	sealed, err := Encrypt(key, []byte("refresh-token-value"))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "refresh-token-value")

	plain, err := Decrypt(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-value", string(plain))

	other := bytes.Repeat([]byte{8}, 32)
	_, err = Decrypt(other, sealed)
	assert.Error(t, err)

	_, err = Encrypt([]byte("short"), []byte("x"))
	assert.Error(t, err)
}
