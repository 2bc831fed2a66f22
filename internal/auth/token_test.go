package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testCredentials() *Credentials {
	return &Credentials{
		IssuerID: "c055a2b0-1111-2222-3333-444455556666",
		KeyID:    "ABC123DEFG",
		Key:      testScalar,
	}
}

func decodeSegment(t *testing.T, segment string) map[string]interface{} {
	t.Helper()
	data, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		t.Fatalf("failed to decode segment: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("failed to unmarshal segment: %v", err)
	}
	return m
}

func TestGenerateToken_Structure(t *testing.T) {
	creds := testCredentials()
	now := time.Unix(1700000000, 0)

	token, err := GenerateToken(creds, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 dot-separated segments, got %d", len(parts))
	}

	header := decodeSegment(t, parts[0])
	if header["alg"] != "ES256" {
		t.Errorf("expected alg 'ES256', got '%v'", header["alg"])
	}
	if header["kid"] != creds.KeyID {
		t.Errorf("expected kid '%s', got '%v'", creds.KeyID, header["kid"])
	}
	if header["typ"] != "JWT" {
		t.Errorf("expected typ 'JWT', got '%v'", header["typ"])
	}

	payload := decodeSegment(t, parts[1])
	if payload["iss"] != creds.IssuerID {
		t.Errorf("expected iss '%s', got '%v'", creds.IssuerID, payload["iss"])
	}
	iat, _ := payload["iat"].(float64)
	exp, _ := payload["exp"].(float64)
	if int64(iat) != now.Unix() {
		t.Errorf("expected iat %d, got %d", now.Unix(), int64(iat))
	}
	if int64(exp-iat) != 1200 {
		t.Errorf("expected exp-iat 1200, got %d", int64(exp-iat))
	}
}

func TestGenerateToken_Verifies(t *testing.T) {
	creds := testCredentials()
	token, err := GenerateToken(creds, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return &creds.privateKey().PublicKey, nil
	}, jwt.WithValidMethods([]string{"ES256"}), jwt.WithAudience("appstoreconnect-v1"))
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if !parsed.Valid {
		t.Error("expected token to be valid")
	}
}

func TestGenerateToken_FreshPerCall(t *testing.T) {
	creds := testCredentials()
	now := time.Unix(1700000000, 0)

	a, err := GenerateToken(creds, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateToken(creds, now.Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same credentials, different issue time: different payloads.
	if strings.Split(a, ".")[1] == strings.Split(b, ".")[1] {
		t.Error("expected payloads to differ across issue times")
	}
}
