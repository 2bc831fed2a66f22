// Package auth decodes App Store Connect API keys and signs the short-lived
// tokens the API requires on every request.
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/havard/lazycloud/internal/config"
)

var (
	// ErrMissingSecret indicates one of the three required secrets is absent.
	ErrMissingSecret = errors.New("missing required secret")

	// ErrEmptyInput indicates the key blob was empty or whitespace-only.
	ErrEmptyInput = errors.New("empty key input")

	// ErrMissingPrivateKeyScalar indicates no 32-byte scalar was found in the
	// decoded key material.
	ErrMissingPrivateKeyScalar = errors.New("no private key scalar found")
)

// Credentials holds everything needed to sign API tokens.
type Credentials struct {
	IssuerID string
	KeyID    string
	Key      [32]byte
}

// LoadCredentials reads the issuer id, key id, and private key blob from the
// environment, falling back to the lazycloud config file for any value the
// environment leaves empty. All three are required.
func LoadCredentials() (*Credentials, error) {
	issuerID := os.Getenv(config.EnvIssuerID)
	keyID := os.Getenv(config.EnvKeyID)
	keyBlob := os.Getenv(config.EnvKey)

	if issuerID == "" || keyID == "" || keyBlob == "" {
		if cfg, err := config.LoadLazyCloudConfig(); err == nil {
			if issuerID == "" {
				issuerID = cfg.IssuerID
			}
			if keyID == "" {
				keyID = cfg.KeyID
			}
			if keyBlob == "" {
				keyBlob, _ = cfg.KeyBlob()
			}
		}
	}

	if issuerID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSecret, config.EnvIssuerID)
	}
	if keyID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSecret, config.EnvKeyID)
	}
	if keyBlob == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSecret, config.EnvKey)
	}

	key, err := DecodeKey([]byte(keyBlob))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", config.EnvKey, err)
	}

	return &Credentials{
		IssuerID: issuerID,
		KeyID:    keyID,
		Key:      key,
	}, nil
}
