package httpsession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ephemeralmail "github.com/ephemeralmail/client-go"
)

// ErrTokenNotFound is returned by ExtractToken when the markers are missing.
var ErrTokenNotFound = errors.New("token not found")

// StatusError is a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *StatusError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, body)
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Is implements errors.Is for sentinel error matching.
func (e *StatusError) Is(target error) bool {
	return e.StatusCode == http.StatusTooManyRequests && target == ephemeralmail.ErrRateLimited
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *NetworkError) Is(target error) bool {
	return target == ephemeralmail.ErrTransport
}

// CreationError converts a session error into an
// *ephemeralmail.InboxCreationError for provider. HTTP 429 becomes
// RateLimited, other statuses CreationFailed with the response body as
// detail, and network or context failures Transport. Errors that are already
// typed pass through; anything else is returned unchanged.
func CreationError(err error, provider ephemeralmail.ProviderType) error {
	if err == nil {
		return nil
	}

	var ce *ephemeralmail.InboxCreationError
	if errors.As(err, &ce) {
		return err
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return &ephemeralmail.InboxCreationError{
				Kind:     ephemeralmail.CreationErrorRateLimited,
				Provider: provider,
				Err:      err,
			}
		}
		detail := strings.TrimSpace(statusErr.Body)
		if detail == "" {
			detail = fmt.Sprintf("HTTP %d", statusErr.StatusCode)
		}
		return &ephemeralmail.InboxCreationError{
			Kind:     ephemeralmail.CreationErrorFailed,
			Provider: provider,
			Detail:   detail,
			Err:      err,
		}
	}

	if isTransport(err) {
		return &ephemeralmail.InboxCreationError{
			Kind:     ephemeralmail.CreationErrorTransport,
			Provider: provider,
			Err:      err,
		}
	}

	return err
}

// FetchError converts a session error into an
// *ephemeralmail.MessageFetcherError. Any status outside 2xx becomes
// InvalidResponseStatus and network or context failures Transport.
func FetchError(err error) error {
	if err == nil {
		return nil
	}

	var fe *ephemeralmail.MessageFetcherError
	if errors.As(err, &fe) {
		return err
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return &ephemeralmail.MessageFetcherError{
			Kind:       ephemeralmail.FetchErrorInvalidResponseStatus,
			StatusCode: statusErr.StatusCode,
			Err:        err,
		}
	}

	if isTransport(err) {
		return &ephemeralmail.MessageFetcherError{
			Kind: ephemeralmail.FetchErrorTransport,
			Err:  err,
		}
	}

	return err
}

func isTransport(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
