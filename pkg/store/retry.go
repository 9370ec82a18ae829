// retry.go retries writes that fail on transient SQLite contention.
//
// Two chrono processes saving into the same WAL database can see
// SQLITE_BUSY, SQLITE_LOCKED or IOERR_SHORT_READ (522). busy_timeout covers
// most BUSY cases at the connection level; the rest are retried here with
// exponential backoff and jitter.
package store

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type retryConfig struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	sleep      func(time.Duration)
}

var defaultRetryConfig = retryConfig{
	maxRetries: 3,
	baseDelay:  50 * time.Millisecond,
	maxDelay:   500 * time.Millisecond,
	sleep:      time.Sleep,
}

// isTransient reports whether err is contention that a retry can clear.
// Driver errors are classified by code; anything else that reached us as
// text (wrapped by database/sql or a caller) falls back to substring
// matching.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch code := se.Code(); {
		case code == sqlite3.SQLITE_IOERR_SHORT_READ:
			return true
		case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}
	msg := err.Error()
	for _, pattern := range []string{
		"SQLITE_BUSY",
		"SQLITE_LOCKED",
		"IOERR_SHORT_READ",
		"database is locked",
		"database table is locked",
		"(5)",
		"(6)",
		"(522)",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// retryOp runs fn until it succeeds, fails permanently, or exhausts
// cfg.maxRetries retries.
func retryOp(cfg retryConfig, fn func() error) error {
	sleep := cfg.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	var lastErr error
	for attempt := 0; attempt <= cfg.maxRetries; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
		if attempt < cfg.maxRetries {
			sleep(backoffDelay(cfg, attempt))
		}
	}
	return lastErr
}

// backoffDelay is min(baseDelay<<attempt, maxDelay) plus jitter in
// [0, baseDelay).
func backoffDelay(cfg retryConfig, attempt int) time.Duration {
	delay := min(cfg.baseDelay<<uint(attempt), cfg.maxDelay)
	return delay + time.Duration(rand.Int63n(int64(cfg.baseDelay)))
}
