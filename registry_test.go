package ephemeralmail

import (
	"errors"
	"slices"
	"testing"
)

func TestNewRegistry_Empty(t *testing.T) {
	r := NewRegistry()
	if types := r.ProviderTypes(); len(types) != 0 {
		t.Errorf("ProviderTypes() = %v, want empty", types)
	}
	if r.Has(ProviderMailTm) {
		t.Error("Has(mail.tm) = true on empty registry")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if got := r.ProviderTypes(); !slices.Equal(got, BuiltinProviderTypes()) {
		t.Errorf("ProviderTypes() = %v, want %v", got, BuiltinProviderTypes())
	}
	for _, pt := range BuiltinProviderTypes() {
		p, err := r.New(pt)
		if err != nil {
			t.Fatalf("New(%s) error = %v", pt, err)
		}
		if p.Type() != pt {
			t.Errorf("New(%s).Type() = %s", pt, p.Type())
		}
	}
}

func TestRegistry_RegisterKeepsOrder(t *testing.T) {
	a := &stubProvider{typ: "a"}
	b := &stubProvider{typ: "b"}
	c := &stubProvider{typ: "c"}
	r := registryWith(a, b, c)

	replacement := &stubProvider{typ: "b", domains: []Domain{DomainEdnyNet}}
	r.Register("b", func() Provider { return replacement })

	want := []ProviderType{"a", "b", "c"}
	if got := r.ProviderTypes(); !slices.Equal(got, want) {
		t.Errorf("ProviderTypes() = %v, want %v", got, want)
	}

	p, err := r.New("b")
	if err != nil {
		t.Fatalf("New(b) error = %v", err)
	}
	if p != replacement {
		t.Error("New(b) did not return the replacement provider")
	}
}

func TestRegistry_Clone(t *testing.T) {
	orig := registryWith(&stubProvider{typ: "a"})
	clone := orig.Clone()

	clone.Register("b", func() Provider { return &stubProvider{typ: "b"} })
	if orig.Has("b") {
		t.Error("registering on the clone changed the original")
	}

	orig.Register("a", func() Provider { return &stubProvider{typ: "a", customDomains: true} })
	p, _ := clone.New("a")
	if p.SupportsCustomDomains() {
		t.Error("replacing on the original changed the clone")
	}
}

func TestRegistry_NewUnknown(t *testing.T) {
	_, err := NewRegistry().New("nope")
	if !errors.Is(err, ErrProviderNotImplemented) {
		t.Errorf("New() error = %v, want ErrProviderNotImplemented", err)
	}

	var ce *InboxCreationError
	if !errors.As(err, &ce) || ce.Provider != "nope" {
		t.Errorf("error = %#v, want provider nope", err)
	}
}

func TestRegistry_RandomProviderType(t *testing.T) {
	r := registryWith(&stubProvider{typ: "a"}, &stubProvider{typ: "b"}, &stubProvider{typ: "c"})

	for i, want := range []ProviderType{"a", "b", "c"} {
		got, err := r.RandomProviderType(&sequenceRand{values: []int{i}})
		if err != nil {
			t.Fatalf("RandomProviderType() error = %v", err)
		}
		if got != want {
			t.Errorf("RandomProviderType() = %s, want %s", got, want)
		}
	}

	got, err := r.RandomProviderType(nil)
	if err != nil || !r.Has(got) {
		t.Errorf("RandomProviderType(nil) = %s, %v", got, err)
	}
}

func TestRegistry_RandomProviderType_Empty(t *testing.T) {
	_, err := NewRegistry().RandomProviderType(nil)
	if !errors.Is(err, ErrProviderNotImplemented) {
		t.Errorf("RandomProviderType() error = %v, want ErrProviderNotImplemented", err)
	}
}

func TestRegistry_FindProviderForDomain(t *testing.T) {
	first := &stubProvider{typ: "first", domains: []Domain{DomainEdnyNet, DomainMuellIo}}
	second := &stubProvider{typ: "second", domains: []Domain{DomainMuellIo, DomainFileSavedOrg}}
	custom := &stubProvider{typ: "custom", customDomains: true}
	r := registryWith(first, second, custom)

	tests := []struct {
		domain Domain
		want   ProviderType
		found  bool
	}{
		{DomainEdnyNet, "first", true},
		{DomainMuellIo, "first", true},
		{DomainFileSavedOrg, "second", true},
		{DomainUndeadBankCom, "", false},
		{"test.invalid", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain.String(), func(t *testing.T) {
			got, found := r.FindProviderForDomain(tt.domain)
			if found != tt.found || got != tt.want {
				t.Errorf("FindProviderForDomain() = %s, %v, want %s, %v", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestDefaultRegistry_FindProviderForDomain(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		domain Domain
		want   ProviderType
	}{
		{DomainEdnyNet, ProviderMailTm},
		{DomainRamenMailDe, ProviderMuellmail},
		{DomainStacysMom, ProviderMuellmail},
		{DomainFileSavedOrg, ProviderFakeMailNet},
		{DomainUndeadBankCom, ProviderTempMailLol},
	}

	for _, tt := range tests {
		t.Run(tt.domain.String(), func(t *testing.T) {
			got, found := r.FindProviderForDomain(tt.domain)
			if !found || got != tt.want {
				t.Errorf("FindProviderForDomain() = %s, %v, want %s", got, found, tt.want)
			}
		})
	}
}
