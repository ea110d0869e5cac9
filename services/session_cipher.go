package services

import (
	"fmt"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

// sessionCipher encrypts stored token values when SESSION_SECRET is set. A nil
// key stores them as they are. Empty values stay empty so a cleared token
// reads back as cleared.
type sessionCipher struct {
	key []byte
}

func (c sessionCipher) seal(session models.Session) (models.Session, error) {
	if c.key == nil {
		return session, nil
	}
	access, err := c.sealValue(session.AccessToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to encrypt token: %w", err)
	}
	refresh, err := c.sealValue(session.RefreshToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to encrypt refreshToken: %w", err)
	}
	return models.Session{AccessToken: access, RefreshToken: refresh}, nil
}

func (c sessionCipher) open(stored models.Session) (models.Session, error) {
	if c.key == nil {
		return stored, nil
	}
	access, err := c.openValue(stored.AccessToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to decrypt token: %w", err)
	}
	refresh, err := c.openValue(stored.RefreshToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to decrypt refreshToken: %w", err)
	}
	return models.Session{AccessToken: access, RefreshToken: refresh}, nil
}

func (c sessionCipher) sealValue(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	return utils.Encrypt(c.key, []byte(v))
}

func (c sessionCipher) openValue(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	plain, err := utils.Decrypt(c.key, v)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
