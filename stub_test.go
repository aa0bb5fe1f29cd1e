package ephemeralmail

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const stubProviderType ProviderType = "stub"

// stubProvider records every call and never touches the network.
type stubProvider struct {
	typ           ProviderType
	domains       []Domain
	customDomains bool
	messages      []Message
	createErr     error

	mu    sync.Mutex
	calls []stubCall
}

type stubCall struct {
	op     string
	name   string
	domain Domain
}

func (p *stubProvider) Type() ProviderType {
	if p.typ == "" {
		return stubProviderType
	}
	return p.typ
}

func (p *stubProvider) SupportedDomains() []Domain { return p.domains }

func (p *stubProvider) SupportsCustomDomains() bool { return p.customDomains }

func (p *stubProvider) CreateInbox(_ context.Context, name string, domain Domain) (*Inbox, error) {
	p.record(stubCall{op: "CreateInbox", name: name, domain: domain})
	if p.createErr != nil {
		return nil, p.createErr
	}
	return NewInbox(NewEmailAddress(name, domain), &stubSession{messages: p.messages}), nil
}

func (p *stubProvider) record(c stubCall) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, c)
}

func (p *stubProvider) Calls() []stubCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]stubCall(nil), p.calls...)
}

// nameStubProvider lets the server pick the domain.
type nameStubProvider struct {
	*stubProvider
	assigned Domain
}

func (p *nameStubProvider) CreateInboxForName(_ context.Context, name string) (*Inbox, error) {
	p.record(stubCall{op: "CreateInboxForName", name: name})
	return NewInbox(NewEmailAddress(name, p.assigned), &stubSession{messages: p.messages}), nil
}

// panicProvider fails the test if any backend operation is reached.
type panicProvider struct {
	stubProvider
}

func (p *panicProvider) CreateInbox(context.Context, string, Domain) (*Inbox, error) {
	panic("CreateInbox must not be called")
}

// stubSession returns a fixed message list and tracks concurrent entries.
type stubSession struct {
	messages []Message
	err      error
	hold     chan struct{}
	delay    time.Duration

	active    atomic.Int32
	maxActive atomic.Int32
	calls     atomic.Int32
}

func (s *stubSession) FetchMessages(ctx context.Context) ([]Message, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		peak := s.maxActive.Load()
		if n <= peak || s.maxActive.CompareAndSwap(peak, n) {
			break
		}
	}
	s.calls.Add(1)

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.hold != nil {
		select {
		case <-s.hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// sequenceRand returns the given values in order, modulo n.
type sequenceRand struct {
	mu     sync.Mutex
	values []int
	next   int
}

func (r *sequenceRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func registryWith(providers ...Provider) *Registry {
	r := NewRegistry()
	for _, p := range providers {
		r.Register(p.Type(), func() Provider { return p })
	}
	return r
}
