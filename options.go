package ephemeralmail

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	registry       *Registry
	backends       []backendBinding
	rand           RandSource
	logger         *zap.Logger
	tracerProvider trace.TracerProvider
}

type backendBinding struct {
	providerType ProviderType
	backend      Backend
}

// inboxConfig holds configuration for inbox creation.
// Empty values mean "not set".
type inboxConfig struct {
	providerType ProviderType
	domain       Domain
	name         string
}

// Option configures the client.
type Option func(*clientConfig)

// InboxOption configures inbox creation.
type InboxOption func(*inboxConfig)

// WithRegistry sets the provider registry. The client works on a copy, so
// later changes to r do not affect it.
// Default: DefaultRegistry()
func WithRegistry(r *Registry) Option {
	return func(c *clientConfig) {
		c.registry = r
	}
}

// WithBackend binds the backend operation of a built-in provider.
// New fails if t is not a built-in provider type.
func WithBackend(t ProviderType, backend Backend) Option {
	return func(c *clientConfig) {
		c.backends = append(c.backends, backendBinding{providerType: t, backend: backend})
	}
}

// WithRand sets the source of randomness used for provider, domain and name
// selection. The source does not need to be safe for concurrent use.
// Default: the math/rand/v2 global generator
func WithRand(r RandSource) Option {
	return func(c *clientConfig) {
		c.rand = r
	}
}

// WithLogger sets the logger. Events are logged at debug level.
// Default: zap.NewNop()
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// Default: the global tracer provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracerProvider = tp
	}
}

// WithProvider selects the provider explicitly. It wins over a domain based
// lookup; the domain, if any, is then checked against the provider.
func WithProvider(t ProviderType) InboxOption {
	return func(c *inboxConfig) {
		c.providerType = t
	}
}

// WithDomain requests a domain. Without WithProvider, the first registered
// provider serving the domain is used.
func WithDomain(d Domain) InboxOption {
	return func(c *inboxConfig) {
		c.domain = d
	}
}

// WithName requests the local part of the address.
func WithName(name string) InboxOption {
	return func(c *inboxConfig) {
		c.name = name
	}
}
