package auth

import (
	"encoding/base64"
	"strings"
)

// DecodeKey extracts the raw P-256 private scalar from a key blob. App Store
// Connect keys arrive in the wild as PEM, raw DER, or a Base64 wrapping of
// either, so each form is attempted in turn:
//
//  1. Base64 of a PEM document
//  2. Base64 of raw DER
//  3. PEM text directly
//  4. raw DER bytes directly
//
// The DER is not parsed as ASN.1; the scalar is located by scanning for an
// OCTET STRING of length 32 (0x04 0x20), which is where every PKCS#8 or SEC1
// encoding of a P-256 key stores it.
func DecodeKey(blob []byte) ([32]byte, error) {
	var zero [32]byte

	trimmed := strings.TrimSpace(string(blob))
	if trimmed == "" {
		return zero, ErrEmptyInput
	}

	if decoded, ok := decodeBase64(trimmed); ok {
		if der, ok := pemToDER(string(decoded)); ok {
			if scalar, err := scanScalar(der); err == nil {
				return scalar, nil
			}
		}
		if scalar, err := scanScalar(decoded); err == nil {
			return scalar, nil
		}
	}

	if der, ok := pemToDER(trimmed); ok {
		if scalar, err := scanScalar(der); err == nil {
			return scalar, nil
		}
	}

	return scanScalar([]byte(trimmed))
}

// base64Variants covers the alphabet/padding combinations seen in key blobs.
var base64Variants = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeBase64 attempts each Base64 variant against the whitespace-stripped
// input and returns the first successful decode.
func decodeBase64(s string) ([]byte, bool) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	if compact == "" {
		return nil, false
	}
	for _, enc := range base64Variants {
		if decoded, err := enc.DecodeString(compact); err == nil {
			return decoded, true
		}
	}
	return nil, false
}

// pemToDER strips PEM armor (header/footer/blank lines), concatenates the
// body, and Base64-decodes it. Returns false if the input has no PEM markers
// or the body does not decode.
func pemToDER(s string) ([]byte, bool) {
	if !strings.Contains(s, "-----BEGIN") {
		return nil, false
	}
	var body strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-----") {
			continue
		}
		body.WriteString(line)
	}
	der, ok := decodeBase64(body.String())
	if !ok {
		return nil, false
	}
	return der, true
}

// scanScalar finds the first ASN.1 OCTET STRING of length 32 in der and
// copies out the 32 bytes that follow.
func scanScalar(der []byte) ([32]byte, error) {
	var scalar [32]byte
	for i := 0; i+2+32 <= len(der); i++ {
		if der[i] == 0x04 && der[i+1] == 0x20 {
			copy(scalar[:], der[i+2:i+2+32])
			return scalar, nil
		}
	}
	return scalar, ErrMissingPrivateKeyScalar
}
