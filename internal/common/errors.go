package common

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrUnauthorized is returned when the backend answers 401 or the
	// local session holds no token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned on HTTP 429 from the AI-backed endpoints.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnavailable covers transport failures and timeouts.
	ErrUnavailable = errors.New("server unavailable")

	// ErrValidation is returned for input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned by repositories and catalogs.
	ErrNotFound = errors.New("not found")
)

// ErrorKind classifies an error for presentation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnauthorized
	KindRateLimited
	KindNetwork
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// KindOf maps err onto the error taxonomy. A nil error is KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnknown
}
