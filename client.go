package ephemeralmail

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Client resolves inbox requests into a provider and creates inboxes through
// it. A Client holds no per-inbox state and is safe for concurrent use.
type Client struct {
	registry *Registry
	rand     RandSource
	logger   *zap.Logger
	tracer   trace.Tracer
}

// New creates a client. Without options it resolves against DefaultRegistry.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var registry *Registry
	if cfg.registry != nil {
		registry = cfg.registry.Clone()
	} else {
		registry = DefaultRegistry()
	}
	for _, b := range cfg.backends {
		if err := registry.RegisterBackend(b.providerType, b.backend); err != nil {
			return nil, err
		}
	}

	var rs RandSource = globalRand{}
	if cfg.rand != nil {
		rs = &lockedRand{src: cfg.rand}
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		registry: registry,
		rand:     rs,
		logger:   logger.Named("ephemeralmail"),
		tracer:   newTracer(cfg.tracerProvider),
	}, nil
}

// ProviderTypes returns the provider types the client can resolve, in
// lookup priority order.
func (c *Client) ProviderTypes() []ProviderType {
	return c.registry.ProviderTypes()
}

// CreateInbox creates a new temporary email inbox.
//
// The provider is resolved first: an explicit WithProvider always wins, a
// WithDomain alone selects the first provider serving that domain, and with
// neither a provider is picked at random. A requested domain is then checked
// against the provider before any network call, failing with
// ErrInvalidDomainForProvider when the provider neither lists the domain nor
// accepts it as a custom domain. Finally the creation flow matching the
// options that were set runs on the provider.
func (c *Client) CreateInbox(ctx context.Context, opts ...InboxOption) (*Inbox, error) {
	cfg := &inboxConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := c.tracer.Start(ctx, spanCreateInbox)
	defer span.End()

	inbox, providerType, err := c.createInbox(ctx, cfg)
	span.SetAttributes(attrProvider.String(string(providerType)))
	if cfg.domain != "" {
		span.SetAttributes(attrDomain.String(cfg.domain.String()))
	}
	if err != nil {
		kind := CreationErrorUnknown
		var ce *InboxCreationError
		if errors.As(err, &ce) {
			kind = ce.Kind
		}
		recordError(span, err, kind.String())
		c.logger.Debug("create inbox failed",
			zap.String("provider", string(providerType)),
			zap.String("domain", cfg.domain.String()),
			zap.Error(err),
		)
		return nil, err
	}

	inbox.bind(providerType, c.logger, c.tracer)
	span.SetAttributes(attrAddress.String(inbox.EmailAddress()))
	c.logger.Debug("created inbox",
		zap.String("provider", string(providerType)),
		zap.String("address", inbox.EmailAddress()),
	)
	return inbox, nil
}

func (c *Client) createInbox(ctx context.Context, cfg *inboxConfig) (*Inbox, ProviderType, error) {
	providerType, err := c.resolveProviderType(cfg)
	if err != nil {
		return nil, "", err
	}

	provider, err := c.registry.New(providerType)
	if err != nil {
		return nil, providerType, err
	}

	if cfg.domain != "" && !domainAllowed(provider, cfg.domain) {
		return nil, providerType, errInvalidDomainForProvider(cfg.domain, providerType)
	}

	c.logger.Debug("resolved provider",
		zap.String("provider", string(providerType)),
		zap.Bool("name_set", cfg.name != ""),
		zap.Bool("domain_set", cfg.domain != ""),
	)

	var inbox *Inbox
	switch {
	case cfg.name != "" && cfg.domain != "":
		inbox, err = provider.CreateInbox(ctx, cfg.name, cfg.domain)
	case cfg.name != "":
		inbox, err = CreateInboxForName(ctx, provider, cfg.name, c.rand)
	case cfg.domain != "":
		inbox, err = CreateInboxForDomain(ctx, provider, cfg.domain, c.rand)
	default:
		inbox, err = CreateRandomInbox(ctx, provider, c.rand)
	}
	if err != nil {
		return nil, providerType, creationError(err, providerType)
	}
	if inbox == nil {
		return nil, providerType, &InboxCreationError{
			Kind:     CreationErrorFailed,
			Provider: providerType,
			Detail:   fmt.Sprintf("provider %s returned no inbox", providerType),
		}
	}
	return inbox, providerType, nil
}

// resolveProviderType picks the provider for cfg without instantiating it
// for use.
func (c *Client) resolveProviderType(cfg *inboxConfig) (ProviderType, error) {
	switch {
	case cfg.providerType != "":
		return cfg.providerType, nil
	case cfg.domain != "":
		t, ok := c.registry.FindProviderForDomain(cfg.domain)
		if !ok {
			return "", errNoProviderForDomain(cfg.domain)
		}
		return t, nil
	default:
		return c.registry.RandomProviderType(c.rand)
	}
}

// domainAllowed reports whether p can create an inbox on d: either d is one
// of its domains, or d is a custom domain and p accepts custom domains.
func domainAllowed(p Provider, d Domain) bool {
	if slices.Contains(p.SupportedDomains(), d) {
		return true
	}
	return p.SupportsCustomDomains() && d.IsCustom()
}
