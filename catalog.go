package ephemeralmail

import (
	"context"
	"fmt"
	"slices"
)

// ProviderType identifies a temporary email provider.
type ProviderType string

// Built-in provider types, in catalog order.
const (
	ProviderMailTm      ProviderType = "mail.tm"
	ProviderMuellmail   ProviderType = "muellmail"
	ProviderFakeMailNet ProviderType = "fakemail.net"
	ProviderTempMailLol ProviderType = "tempmail.lol"
)

var providerDisplayNames = map[ProviderType]string{
	ProviderMailTm:      "Mail.tm",
	ProviderMuellmail:   "Muellmail",
	ProviderFakeMailNet: "FakeMail.net",
	ProviderTempMailLol: "TempMail.lol",
}

// String returns the display name of built-in providers and the raw tag of
// any other provider.
func (t ProviderType) String() string {
	if name, ok := providerDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// Backend performs the provider-specific web flow behind inbox creation.
// The returned Inbox carries the session used for later fetches.
//
// A Backend may also implement NameInboxCreator when the service can assign
// the domain itself.
type Backend interface {
	CreateInbox(ctx context.Context, name string, domain Domain) (*Inbox, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, name string, domain Domain) (*Inbox, error)

// CreateInbox calls f(ctx, name, domain).
func (f BackendFunc) CreateInbox(ctx context.Context, name string, domain Domain) (*Inbox, error) {
	return f(ctx, name, domain)
}

// catalogEntry is the static description of a built-in provider.
type catalogEntry struct {
	providerType  ProviderType
	domains       []Domain
	customDomains bool
	// serverPicksDomain makes RandomDomain report ErrDomainNotSupported even
	// though domains is not empty, so creation without a domain goes through
	// the name-only flow.
	serverPicksDomain bool
}

var builtinCatalog = []catalogEntry{
	{providerType: ProviderMailTm, domains: mailTmDomains},
	{providerType: ProviderMuellmail, domains: muellmailDomains},
	{providerType: ProviderFakeMailNet, domains: fakeMailNetDomains},
	{
		providerType:      ProviderTempMailLol,
		domains:           tempMailLolDomains,
		customDomains:     true,
		serverPicksDomain: true,
	},
}

func lookupCatalogEntry(t ProviderType) (catalogEntry, bool) {
	for _, entry := range builtinCatalog {
		if entry.providerType == t {
			return entry, true
		}
	}
	return catalogEntry{}, false
}

// BuiltinProviderTypes returns the built-in provider types in catalog order.
func BuiltinProviderTypes() []ProviderType {
	types := make([]ProviderType, 0, len(builtinCatalog))
	for _, entry := range builtinCatalog {
		types = append(types, entry.providerType)
	}
	return types
}

// catalogProvider is a built-in provider bound to an optional Backend.
type catalogProvider struct {
	entry   catalogEntry
	backend Backend
}

func newCatalogProvider(entry catalogEntry, backend Backend) Provider {
	p := &catalogProvider{entry: entry, backend: backend}
	if creator, ok := backend.(NameInboxCreator); ok {
		return &nameCatalogProvider{catalogProvider: p, creator: creator}
	}
	return p
}

func (p *catalogProvider) Type() ProviderType { return p.entry.providerType }

func (p *catalogProvider) SupportedDomains() []Domain { return slices.Clone(p.entry.domains) }

func (p *catalogProvider) SupportsCustomDomains() bool { return p.entry.customDomains }

func (p *catalogProvider) CreateInbox(ctx context.Context, name string, domain Domain) (*Inbox, error) {
	if p.backend == nil {
		return nil, errProviderNotImplemented(p.entry.providerType)
	}
	return p.backend.CreateInbox(ctx, name, domain)
}

// RandomDomain implements DomainChooser. Without a backend no creation flow
// can succeed, so it reports ErrProviderNotImplemented before choosing.
func (p *catalogProvider) RandomDomain(r RandSource) (Domain, error) {
	if p.backend == nil {
		return "", errProviderNotImplemented(p.entry.providerType)
	}
	if p.entry.serverPicksDomain || len(p.entry.domains) == 0 {
		return "", errDomainNotSupported(p.entry.providerType)
	}
	return p.entry.domains[r.IntN(len(p.entry.domains))], nil
}

// nameCatalogProvider is a catalogProvider whose backend can create an inbox
// from a name alone.
type nameCatalogProvider struct {
	*catalogProvider
	creator NameInboxCreator
}

func (p *nameCatalogProvider) CreateInboxForName(ctx context.Context, name string) (*Inbox, error) {
	return p.creator.CreateInboxForName(ctx, name)
}

// RegisterBackend binds backend to the built-in provider t, replacing any
// provider previously registered under t.
func (r *Registry) RegisterBackend(t ProviderType, backend Backend) error {
	entry, ok := lookupCatalogEntry(t)
	if !ok {
		return fmt.Errorf("register backend: %q is not a built-in provider", string(t))
	}
	r.Register(t, func() Provider { return newCatalogProvider(entry, backend) })
	return nil
}
