package ephemeralmail

import "slices"

// ProviderFactory builds a fresh provider. Factories must be cheap and free
// of side effects: network I/O belongs in Provider.CreateInbox.
type ProviderFactory func() Provider

type registryEntry struct {
	providerType ProviderType
	factory      ProviderFactory
}

// Registry is the ordered catalog of provider types a Client can resolve.
//
// A Registry is populated during setup and only read afterwards; Register
// and RegisterBackend must not run concurrently with lookups.
type Registry struct {
	entries []registryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry holding the built-in providers in
// catalog order. None of them has a backend, so creating an inbox through
// them fails with ErrProviderNotImplemented until RegisterBackend is called.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, entry := range builtinCatalog {
		r.Register(entry.providerType, func() Provider { return newCatalogProvider(entry, nil) })
	}
	return r
}

// Register adds a provider type. Registering a type twice replaces its
// factory and keeps its original position.
func (r *Registry) Register(t ProviderType, factory ProviderFactory) {
	for i := range r.entries {
		if r.entries[i].providerType == t {
			r.entries[i].factory = factory
			return
		}
	}
	r.entries = append(r.entries, registryEntry{providerType: t, factory: factory})
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	return &Registry{entries: slices.Clone(r.entries)}
}

// ProviderTypes returns the registered provider types in registration order.
func (r *Registry) ProviderTypes() []ProviderType {
	types := make([]ProviderType, 0, len(r.entries))
	for _, e := range r.entries {
		types = append(types, e.providerType)
	}
	return types
}

// Has reports whether t is registered.
func (r *Registry) Has(t ProviderType) bool {
	_, ok := r.factory(t)
	return ok
}

func (r *Registry) factory(t ProviderType) (ProviderFactory, bool) {
	for _, e := range r.entries {
		if e.providerType == t {
			return e.factory, true
		}
	}
	return nil, false
}

// New builds a fresh provider for t. It fails with ErrProviderNotImplemented
// when t is not registered.
func (r *Registry) New(t ProviderType) (Provider, error) {
	factory, ok := r.factory(t)
	if !ok {
		return nil, errProviderNotImplemented(t)
	}
	return factory(), nil
}

// RandomProviderType picks a registered provider type uniformly at random.
func (r *Registry) RandomProviderType(rs RandSource) (ProviderType, error) {
	if len(r.entries) == 0 {
		return "", &InboxCreationError{
			Kind:   CreationErrorProviderNotImplemented,
			Detail: "no providers registered",
		}
	}
	return r.entries[orGlobalRand(rs).IntN(len(r.entries))].providerType, nil
}

// FindProviderForDomain returns the first provider type, in registration
// order, whose supported domains contain d. Registration order is therefore
// the tie-break priority between providers sharing a domain.
//
// Each lookup instantiates every provider once. That is fine for a small
// catalog with cheap, side-effect free factories.
func (r *Registry) FindProviderForDomain(d Domain) (ProviderType, bool) {
	for _, e := range r.entries {
		if slices.Contains(e.factory().SupportedDomains(), d) {
			return e.providerType, true
		}
	}
	return "", false
}
