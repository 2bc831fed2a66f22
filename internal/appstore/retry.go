package appstore

import (
	"time"

	"github.com/havard/lazycloud/internal/config"
)

// shouldRetry decides whether a failed attempt is retried and after what
// delay. Attempts are zero-indexed; the policy allows config.MaxAttempts
// attempts in total and backs off linearly: 250ms, 500ms, ...
//
// Kept free of transport mechanics so the policy is testable on its own.
func shouldRetry(attempt int, err error) (time.Duration, bool) {
	if attempt >= config.MaxAttempts-1 {
		return 0, false
	}
	if !isTransient(err) {
		return 0, false
	}
	return config.RetryBaseDelay * time.Duration(attempt+1), true
}
