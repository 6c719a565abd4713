package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// Secret names stored in the OS keyring under the "smartsched" service.
const (
	SecretAPIKey      = "llm-api-key"
	SecretPostgresDSN = "postgres-dsn"
)

var (
	// ErrNoSecret is returned when a secret is neither in the environment nor
	// in the keyring.
	ErrNoSecret = errors.New("secret not found")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetSecret reads a secret from the keyring.
func GetSecret(name string) (string, error) {
	v, err := keyring.Get(appName, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoSecret
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// SetSecret stores a secret in the keyring.
func SetSecret(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value cannot be empty")
	}
	if err := keyring.Set(appName, name, value); err != nil {
		return fmt.Errorf("storing %s in keyring: %w", name, err)
	}
	return nil
}

// DeleteSecret removes a secret from the keyring.
func DeleteSecret(name string) error {
	if err := keyring.Delete(appName, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoSecret
		}
		return fmt.Errorf("deleting %s from keyring: %w", name, err)
	}
	return nil
}

// APIKey returns the generator API key: SMARTSCHED_LLM_API_KEY first, then
// the keyring.
func APIKey() (string, error) {
	if v := os.Getenv("SMARTSCHED_LLM_API_KEY"); v != "" {
		return v, nil
	}
	return GetSecret(SecretAPIKey)
}

// PostgresDSN returns the Postgres connection string: SMARTSCHED_POSTGRES_DSN
// first, then the keyring.
func PostgresDSN() (string, error) {
	if v := os.Getenv("SMARTSCHED_POSTGRES_DSN"); v != "" {
		return v, nil
	}
	return GetSecret(SecretPostgresDSN)
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
