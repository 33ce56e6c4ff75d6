package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidUserID = errors.New("invalid user id")
	ErrInvalidInput  = errors.New("invalid input")

	// model gateway outcomes
	ErrRateLimited       = errors.New("rate limited by recommendation provider")
	ErrUpstream          = errors.New("recommendation provider error")
	ErrMalformedResponse = errors.New("malformed recommendation response")
)

// RateLimitError is returned when the provider (or the local request budget)
// refuses a call. It matches ErrRateLimited under errors.Is.
type RateLimitError struct {
	RetryAfter time.Duration
	Local      bool
}

func (e *RateLimitError) Error() string {
	src := "provider"
	if e.Local {
		src = "local budget"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited by %s, retry after %s", src, e.RetryAfter)
	}
	return "rate limited by " + src
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
