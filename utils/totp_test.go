package utils

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCode(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "budget-dashboard", AccountName: "user@example.com"})
	require.NoError(t, err)

	code, err := LoginCode(key.Secret(), time.Now())
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.True(t, totp.Validate(code, key.Secret()))
	assert.False(t, totp.Validate("000000x", key.Secret()))
}
