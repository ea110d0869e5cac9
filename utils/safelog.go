// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks credentials and personal data before they reach a log
// ============================================================================

package utils

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// IsProduction controls masking of identities. Tokens are always masked.
var IsProduction = false

// NewLogger builds the process logger. Production uses the JSON encoder,
// everything else the colored console encoder.
func NewLogger(environment, level string) (*zap.Logger, error) {
	IsProduction = environment == "production"

	var cfg zap.Config
	if IsProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ============================================================================
// MASKING
// ============================================================================

// MaskToken keeps only the first 6 characters of a credential.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 10 {
		return "***"
	}
	return token[:6] + "..."
}

// MaskID keeps the first 8 characters of an ID in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// Token is a zap field carrying a masked credential.
func Token(key, token string) zap.Field {
	return zap.String(key, MaskToken(token))
}

// ============================================================================
// DOMAIN LOG HELPERS
// ============================================================================

func LogAuthAction(log *zap.Logger, action, username string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Info("[Auth] "+action,
		zap.String("user", MaskEmail(username)),
		zap.String("status", status))
}

func LogBankingAction(log *zap.Logger, action, itemID string) {
	log.Info("[Banking] "+action, zap.String("item", MaskID(itemID)))
}
