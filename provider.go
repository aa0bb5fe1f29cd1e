package ephemeralmail

import (
	"context"
	"errors"
)

// Provider is the capability each temporary email service implements.
//
// CreateInbox is the only operation that performs network I/O. The other
// creation flows (random inbox, name only, domain only) are derived from it
// by CreateRandomInbox, CreateInboxForName and CreateInboxForDomain.
type Provider interface {
	// Type returns the provider's identity tag.
	Type() ProviderType

	// SupportedDomains returns the domains the provider can create inboxes on.
	SupportedDomains() []Domain

	// SupportsCustomDomains reports whether domains outside the catalog are
	// accepted.
	SupportsCustomDomains() bool

	// CreateInbox creates the inbox name@domain.
	CreateInbox(ctx context.Context, name string, domain Domain) (*Inbox, error)
}

// NameInboxCreator is implemented by providers whose server assigns the
// domain. CreateInboxForName prefers it over picking a random domain.
type NameInboxCreator interface {
	CreateInboxForName(ctx context.Context, name string) (*Inbox, error)
}

// DomainChooser is implemented by providers that replace the uniform choice
// over SupportedDomains. Returning an error matching ErrDomainNotSupported
// makes CreateRandomInbox fall back to name-only creation.
type DomainChooser interface {
	RandomDomain(r RandSource) (Domain, error)
}

// BaseProvider supplies the default behavior for the optional parts of
// Provider: no domains, no custom domains, and a CreateInbox that fails with
// ErrProviderNotImplemented. Embed it and implement Type.
type BaseProvider struct{}

// SupportedDomains returns no domains.
func (BaseProvider) SupportedDomains() []Domain { return nil }

// SupportsCustomDomains returns false.
func (BaseProvider) SupportsCustomDomains() bool { return false }

// CreateInbox fails with ErrProviderNotImplemented.
func (BaseProvider) CreateInbox(context.Context, string, Domain) (*Inbox, error) {
	return nil, errProviderNotImplemented("")
}

// RandomDomain picks one of p's supported domains uniformly at random.
// It fails with ErrDomainNotSupported when p has none, which signals that the
// provider picks its own domain.
func RandomDomain(p Provider, r RandSource) (Domain, error) {
	r = orGlobalRand(r)
	if chooser, ok := p.(DomainChooser); ok {
		return chooser.RandomDomain(r)
	}
	domains := p.SupportedDomains()
	if len(domains) == 0 {
		return "", errDomainNotSupported(p.Type())
	}
	return domains[r.IntN(len(domains))], nil
}

// CreateRandomInbox creates an inbox with a random name on a random domain.
// If p cannot choose a domain, it falls back to CreateInboxForName. Any other
// failure is returned as is.
func CreateRandomInbox(ctx context.Context, p Provider, r RandSource) (*Inbox, error) {
	domain, err := RandomDomain(p, r)
	if errors.Is(err, ErrDomainNotSupported) {
		return CreateInboxForName(ctx, p, RandomName(r), r)
	}
	if err != nil {
		return nil, err
	}
	return p.CreateInbox(ctx, RandomName(r), domain)
}

// CreateInboxForName creates an inbox with the given name on a domain chosen
// by the provider, or at random when the provider has no preference.
func CreateInboxForName(ctx context.Context, p Provider, name string, r RandSource) (*Inbox, error) {
	if creator, ok := p.(NameInboxCreator); ok {
		return creator.CreateInboxForName(ctx, name)
	}
	domain, err := RandomDomain(p, r)
	if err != nil {
		return nil, err
	}
	return p.CreateInbox(ctx, name, domain)
}

// CreateInboxForDomain creates an inbox with a random name on domain.
func CreateInboxForDomain(ctx context.Context, p Provider, domain Domain, r RandSource) (*Inbox, error) {
	return p.CreateInbox(ctx, RandomName(r), domain)
}
