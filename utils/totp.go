package utils

import (
	"time"

	"github.com/pquerna/otp/totp"
)

// LoginCode returns the current 2FA code for a configured TOTP secret, so an
// unattended dashboard can log in to an account that has 2FA enabled.
func LoginCode(secret string, now time.Time) (string, error) {
	return totp.GenerateCode(secret, now)
}
