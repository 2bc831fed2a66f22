package appstore

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/havard/lazycloud/internal/config"
)

// ErrParse indicates a malformed API response. Never retried.
var ErrParse = errors.New("malformed API response")

// StatusKind classifies a terminal HTTP failure.
type StatusKind int

const (
	StatusOther StatusKind = iota
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
	StatusRateLimited
)

func (k StatusKind) String() string {
	switch k {
	case StatusUnauthorized:
		return "unauthorized"
	case StatusForbidden:
		return "forbidden"
	case StatusNotFound:
		return "not found"
	case StatusRateLimited:
		return "rate limited"
	default:
		return "request failed"
	}
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code int
	Kind StatusKind
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d (%s)", e.Code, e.Kind)
}

func newStatusError(code int, body []byte) *StatusError {
	kind := StatusOther
	switch code {
	case 401:
		kind = StatusUnauthorized
	case 403:
		kind = StatusForbidden
	case 404:
		kind = StatusNotFound
	case config.RateLimitStatus:
		kind = StatusRateLimited
	}
	return &StatusError{Code: code, Kind: kind, Body: strings.TrimSpace(string(body))}
}

// retryableStatus reports whether the status code should trigger a retry.
func retryableStatus(code int) bool {
	switch code {
	case config.RateLimitStatus, 500, 502, 503, 504:
		return true
	}
	return false
}

// transientErrnos are the transport-level failures worth retrying.
var transientErrnos = []syscall.Errno{
	syscall.ECONNRESET,
	syscall.EPIPE,
	syscall.ENETUNREACH,
	syscall.EHOSTUNREACH,
	syscall.ECONNREFUSED,
	syscall.ETIMEDOUT,
}

// isTransient classifies an error as retryable. Status codes are classified
// by retryableStatus; transport failures by errno, DNS failure, or timeout.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return retryableStatus(statusErr.Code)
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Transport errors that surface without a typed cause.
	msg := err.Error()
	for _, marker := range []string{
		"connection reset",
		"broken pipe",
		"network is unreachable",
		"host is unreachable",
		"connection refused",
		"connection timed out",
		"no such host",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
