package llm

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error is returned by every Backend call that fails. Quota marks failures
// caused by rate limiting or exhausted quota.
type Error struct {
	Quota bool
	Err   error
}

func (e *Error) Error() string {
	if e.Quota {
		return "llm: quota exceeded: " + e.Err.Error()
	}
	return "llm: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

var quotaMarkers = []string{
	"quota",
	"rate limit",
	"ratelimit",
	"too many requests",
	"resource_exhausted",
	"resource exhausted",
	"429",
}

// Wrap classifies err. It returns nil for nil and leaves an existing *Error
// untouched.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Quota: isQuotaSignal(err), Err: err}
}

// IsQuota reports whether err carries a quota or rate-limit signature.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Quota
	}
	return isQuotaSignal(err)
}

func isQuotaSignal(err error) bool {
	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
