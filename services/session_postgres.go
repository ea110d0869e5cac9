package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LovationAdmin/budget-dashboard/models"
)

const (
	sessionKeyToken   = "token"
	sessionKeyRefresh = "refreshToken"
)

// PostgresSessionBackend stores the session keys in the dashboard_session table,
// for deployments where the gateway runs on ephemeral disks. Values are
// encrypted like the file backend's when a key is configured.
type PostgresSessionBackend struct {
	db     *sql.DB
	cipher sessionCipher
}

func NewPostgresSessionBackend(db *sql.DB, key []byte) *PostgresSessionBackend {
	return &PostgresSessionBackend{db: db, cipher: sessionCipher{key: key}}
}

func (b *PostgresSessionBackend) Load(ctx context.Context) (models.Session, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT key, value FROM dashboard_session WHERE key IN ($1, $2)`,
		sessionKeyToken, sessionKeyRefresh)
	if err != nil {
		return models.Session{}, err
	}
	defer rows.Close()

	var stored models.Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Session{}, err
		}
		switch key {
		case sessionKeyToken:
			stored.AccessToken = value
		case sessionKeyRefresh:
			stored.RefreshToken = value
		}
	}
	if err := rows.Err(); err != nil {
		return models.Session{}, err
	}
	return b.cipher.open(stored)
}

func (b *PostgresSessionBackend) Save(ctx context.Context, session models.Session) error {
	stored, err := b.cipher.seal(session)
	if err != nil {
		return err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := map[string]string{
		sessionKeyToken:   stored.AccessToken,
		sessionKeyRefresh: stored.RefreshToken,
	}
	for key, value := range values {
		if value == "" {
			if _, err := tx.ExecContext(ctx, `DELETE FROM dashboard_session WHERE key = $1`, key); err != nil {
				return fmt.Errorf("failed to clear %s: %w", key, err)
			}
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO dashboard_session (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	return tx.Commit()
}
