package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/havard/lazycloud/internal/config"
)

// GenerateToken signs a fresh ES256 token for the App Store Connect API.
// Tokens are valid for 20 minutes from now; callers generate one per request
// rather than caching.
func GenerateToken(creds *Credentials, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    creds.IssuerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(config.TokenLifetime)),
		Audience:  jwt.ClaimStrings{config.TokenAudience},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = creds.KeyID

	signed, err := token.SignedString(creds.privateKey())
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// privateKey rebuilds the ECDSA private key from the raw scalar.
func (c *Credentials) privateKey() *ecdsa.PrivateKey {
	curve := elliptic.P256()
	priv := &ecdsa.PrivateKey{
		D: new(big.Int).SetBytes(c.Key[:]),
	}
	priv.PublicKey.Curve = curve
	priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(c.Key[:])
	return priv
}
