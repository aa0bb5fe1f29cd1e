package ephemeralmail

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrTransport is matched by failures of the network or HTTP layer,
	// including cancellation and deadline expiry of the caller's context.
	ErrTransport = errors.New("transport error")

	// ErrCreationFailed is matched by provider-side rejections that have no
	// more specific kind.
	ErrCreationFailed = errors.New("cannot create inbox")

	// ErrProviderNotImplemented is returned when the selected provider has no
	// inbox creation operation.
	ErrProviderNotImplemented = errors.New("provider not implemented")

	// ErrDomainNotSupported is returned when a provider cannot choose a domain
	// on its own, for example because the server assigns one.
	ErrDomainNotSupported = errors.New("provider does not support choosing a domain")

	// ErrNoProviderForDomain is returned when no registered provider serves
	// the requested domain.
	ErrNoProviderForDomain = errors.New("no provider for domain")

	// ErrInvalidDomainForProvider is returned when an explicit provider and
	// domain are incompatible.
	ErrInvalidDomainForProvider = errors.New("domain is not valid for provider")

	// ErrNameTaken is returned when the requested local name is in use.
	ErrNameTaken = errors.New("name is already taken")

	// ErrInvalidName is returned when the provider rejects the local name.
	ErrInvalidName = errors.New("name is invalid")

	// ErrInvalidEmailAddress is matched by address parse failures.
	ErrInvalidEmailAddress = errors.New("invalid email address")

	// ErrRateLimited is returned when a provider signals throttling.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidResponseStatus is returned when a provider answers a fetch
	// with an unexpected HTTP status.
	ErrInvalidResponseStatus = errors.New("invalid response status")

	// ErrFetchFailed is matched by message fetch failures that have no more
	// specific kind.
	ErrFetchFailed = errors.New("failed to fetch messages")
)

// EphemeralMailError is implemented by all typed errors of this package.
type EphemeralMailError interface {
	error
	EphemeralMailError() // marker method
}

// CreationErrorKind classifies an InboxCreationError.
// CreationErrorUnknown is the catch-all for kinds added in later versions.
type CreationErrorKind int

const (
	CreationErrorUnknown CreationErrorKind = iota
	CreationErrorTransport
	CreationErrorFailed
	CreationErrorProviderNotImplemented
	CreationErrorDomainNotSupported
	CreationErrorNoProviderForDomain
	CreationErrorInvalidDomainForProvider
	CreationErrorNameTaken
	CreationErrorInvalidName
	CreationErrorInvalidEmailAddress
	CreationErrorRateLimited
)

var creationErrorKindNames = map[CreationErrorKind]string{
	CreationErrorTransport:                "transport",
	CreationErrorFailed:                   "creation_failed",
	CreationErrorProviderNotImplemented:   "provider_not_implemented",
	CreationErrorDomainNotSupported:       "domain_not_supported",
	CreationErrorNoProviderForDomain:      "no_provider_for_domain",
	CreationErrorInvalidDomainForProvider: "invalid_domain_for_provider",
	CreationErrorNameTaken:                "name_taken",
	CreationErrorInvalidName:              "invalid_name",
	CreationErrorInvalidEmailAddress:      "invalid_email_address",
	CreationErrorRateLimited:              "rate_limited",
}

func (k CreationErrorKind) String() string {
	if name, ok := creationErrorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k CreationErrorKind) sentinel() error {
	switch k {
	case CreationErrorTransport:
		return ErrTransport
	case CreationErrorFailed:
		return ErrCreationFailed
	case CreationErrorProviderNotImplemented:
		return ErrProviderNotImplemented
	case CreationErrorDomainNotSupported:
		return ErrDomainNotSupported
	case CreationErrorNoProviderForDomain:
		return ErrNoProviderForDomain
	case CreationErrorInvalidDomainForProvider:
		return ErrInvalidDomainForProvider
	case CreationErrorNameTaken:
		return ErrNameTaken
	case CreationErrorInvalidName:
		return ErrInvalidName
	case CreationErrorInvalidEmailAddress:
		return ErrInvalidEmailAddress
	case CreationErrorRateLimited:
		return ErrRateLimited
	}
	return nil
}

// InboxCreationError describes why an inbox could not be created.
// Only the fields relevant to Kind are set.
type InboxCreationError struct {
	Kind     CreationErrorKind
	Provider ProviderType
	Domain   string // NoProviderForDomain, InvalidDomainForProvider
	Address  string // NameTaken, InvalidName
	Detail   string
	Err      error
}

func (e *InboxCreationError) Error() string {
	switch e.Kind {
	case CreationErrorTransport:
		return fmt.Sprintf("request error: %v", e.Err)
	case CreationErrorFailed:
		if e.Detail == "" && e.Err != nil {
			return fmt.Sprintf("cannot create inbox: %v", e.Err)
		}
		return fmt.Sprintf("cannot create inbox: %s", e.Detail)
	case CreationErrorProviderNotImplemented:
		if e.Provider != "" {
			return fmt.Sprintf("provider %s not implemented", e.Provider)
		}
		return "provider not implemented"
	case CreationErrorDomainNotSupported:
		return "provider does not support choosing a domain"
	case CreationErrorNoProviderForDomain:
		return fmt.Sprintf("could not find a provider for %s", e.orCause(e.Domain))
	case CreationErrorInvalidDomainForProvider:
		return fmt.Sprintf("the domain %s is not valid for provider %s", e.Domain, e.Provider)
	case CreationErrorNameTaken:
		return fmt.Sprintf("name is already taken by someone else: %s", e.orCause(e.Address))
	case CreationErrorInvalidName:
		return fmt.Sprintf("name is invalid: %s", e.orCause(e.Address))
	case CreationErrorInvalidEmailAddress:
		return fmt.Sprintf("an invalid email address was returned: %v", e.Err)
	case CreationErrorRateLimited:
		return "rate limited, try again later"
	}
	if e.Detail != "" {
		return fmt.Sprintf("inbox creation error: %s", e.Detail)
	}
	return "inbox creation error"
}

// orCause returns field, or the cause's message when field is empty.
func (e *InboxCreationError) orCause(field string) string {
	if field == "" && e.Err != nil {
		return e.Err.Error()
	}
	return field
}

// Unwrap returns the underlying error.
func (e *InboxCreationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *InboxCreationError) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// EphemeralMailError implements the EphemeralMailError interface.
func (e *InboxCreationError) EphemeralMailError() {}

// FetchErrorKind classifies a MessageFetcherError.
// FetchErrorUnknown is the catch-all for kinds added in later versions.
type FetchErrorKind int

const (
	FetchErrorUnknown FetchErrorKind = iota
	FetchErrorTransport
	FetchErrorInvalidResponseStatus
	FetchErrorFailed
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorTransport:
		return "transport"
	case FetchErrorInvalidResponseStatus:
		return "invalid_response_status"
	case FetchErrorFailed:
		return "fetch_failed"
	}
	return "unknown"
}

// MessageFetcherError describes why messages could not be fetched.
type MessageFetcherError struct {
	Kind       FetchErrorKind
	StatusCode int // InvalidResponseStatus
	Detail     string
	Err        error
}

func (e *MessageFetcherError) Error() string {
	switch e.Kind {
	case FetchErrorTransport:
		return fmt.Sprintf("request error: %v", e.Err)
	case FetchErrorInvalidResponseStatus:
		if e.StatusCode == 0 && e.Err != nil {
			return fmt.Sprintf("invalid response status: %v", e.Err)
		}
		return fmt.Sprintf("invalid response status: %d", e.StatusCode)
	case FetchErrorFailed:
		if e.Detail == "" && e.Err != nil {
			return fmt.Sprintf("failed to fetch messages: %v", e.Err)
		}
		return fmt.Sprintf("failed to fetch messages: %s", e.Detail)
	}
	if e.Detail != "" {
		return fmt.Sprintf("message fetch error: %s", e.Detail)
	}
	return "message fetch error"
}

// Unwrap returns the underlying error.
func (e *MessageFetcherError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MessageFetcherError) Is(target error) bool {
	switch e.Kind {
	case FetchErrorTransport:
		return target == ErrTransport
	case FetchErrorInvalidResponseStatus:
		return target == ErrInvalidResponseStatus
	case FetchErrorFailed:
		return target == ErrFetchFailed
	}
	return false
}

// EphemeralMailError implements the EphemeralMailError interface.
func (e *MessageFetcherError) EphemeralMailError() {}

// AddressError is returned when a string is not a valid email address.
type AddressError struct {
	Input string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Input)
}

// Is implements errors.Is for sentinel error matching.
func (e *AddressError) Is(target error) bool {
	return target == ErrInvalidEmailAddress
}

// EphemeralMailError implements the EphemeralMailError interface.
func (e *AddressError) EphemeralMailError() {}

func errProviderNotImplemented(provider ProviderType) error {
	return &InboxCreationError{Kind: CreationErrorProviderNotImplemented, Provider: provider}
}

func errDomainNotSupported(provider ProviderType) error {
	return &InboxCreationError{Kind: CreationErrorDomainNotSupported, Provider: provider}
}

func errNoProviderForDomain(domain Domain) error {
	return &InboxCreationError{Kind: CreationErrorNoProviderForDomain, Domain: domain.String()}
}

func errInvalidDomainForProvider(domain Domain, provider ProviderType) error {
	return &InboxCreationError{
		Kind:     CreationErrorInvalidDomainForProvider,
		Domain:   domain.String(),
		Provider: provider,
	}
}

// isTransportFailure reports whether err comes from the network layer or
// from the caller's context, or already claims to be a transport error.
func isTransportFailure(err error) bool {
	if errors.Is(err, ErrTransport) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// creationKinds is the order in which wrapped sentinels are matched.
// Transport is checked before it; CreationFailed is the fallback after it.
var creationKinds = []CreationErrorKind{
	CreationErrorInvalidEmailAddress,
	CreationErrorRateLimited,
	CreationErrorNameTaken,
	CreationErrorInvalidName,
	CreationErrorProviderNotImplemented,
	CreationErrorDomainNotSupported,
	CreationErrorNoProviderForDomain,
	CreationErrorInvalidDomainForProvider,
}

// creationError maps a backend error onto exactly one creation kind.
// Typed errors pass through; the provider tag is filled in when missing.
func creationError(err error, provider ProviderType) error {
	if err == nil {
		return nil
	}

	var ce *InboxCreationError
	if errors.As(err, &ce) {
		if ce == err && ce.Provider == "" && provider != "" {
			stamped := *ce
			stamped.Provider = provider
			return &stamped
		}
		return err
	}

	kind := CreationErrorFailed
	if isTransportFailure(err) {
		kind = CreationErrorTransport
	} else {
		for _, k := range creationKinds {
			if errors.Is(err, k.sentinel()) {
				kind = k
				break
			}
		}
	}
	return &InboxCreationError{Kind: kind, Provider: provider, Err: err}
}

// fetchError maps a session error onto exactly one fetch kind.
func fetchError(err error) error {
	if err == nil {
		return nil
	}

	var fe *MessageFetcherError
	if errors.As(err, &fe) {
		return err
	}

	kind := FetchErrorFailed
	switch {
	case isTransportFailure(err):
		kind = FetchErrorTransport
	case errors.Is(err, ErrInvalidResponseStatus):
		kind = FetchErrorInvalidResponseStatus
	}
	return &MessageFetcherError{Kind: kind, Err: err}
}
