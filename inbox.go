package ephemeralmail

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Session is the live, provider-specific state behind an Inbox (cookies,
// tokens, connections). FetchMessages performs one full round trip.
//
// Sessions need not be safe for concurrent use: an Inbox never calls
// FetchMessages on its session from two goroutines at once.
type Session interface {
	FetchMessages(ctx context.Context) ([]Message, error)
}

// SessionFunc adapts a function to the Session interface.
type SessionFunc func(ctx context.Context) ([]Message, error)

// FetchMessages calls f(ctx).
func (f SessionFunc) FetchMessages(ctx context.Context) ([]Message, error) {
	return f(ctx)
}

// Inbox is a created mailbox bound to one provider session.
//
// Inbox is safe for concurrent use. Fetches on the same Inbox are serialized;
// different inboxes share nothing. There is no explicit cleanup: the session
// goes away with the Inbox.
//
// NewInbox is the only valid constructor; a zero Inbox cannot fetch.
type Inbox struct {
	address  EmailAddress
	provider ProviderType
	session  Session
	sem      *semaphore.Weighted
	bound    sync.Once

	logger *zap.Logger
	tracer trace.Tracer
}

// NewInbox returns an inbox for address whose messages are read through
// session. Backends call it once inbox creation has succeeded. A nil session
// yields an inbox that cannot fetch messages.
func NewInbox(address EmailAddress, session Session) *Inbox {
	return &Inbox{
		address: address,
		session: session,
		sem:     semaphore.NewWeighted(1),
		logger:  zap.NewNop(),
		tracer:  newTracer(nil),
	}
}

// bind attaches the resolved provider and the client's observability to i.
// Only the first call has an effect, so an Inbox a backend hands out twice
// is never modified while in use.
func (i *Inbox) bind(provider ProviderType, logger *zap.Logger, tracer trace.Tracer) {
	i.bound.Do(func() {
		i.provider = provider
		i.logger = logger.With(zap.String("provider", string(provider)), zap.String("address", i.address.String()))
		i.tracer = tracer
	})
}

// Address returns the inbox address.
func (i *Inbox) Address() EmailAddress {
	return i.address
}

// EmailAddress returns the inbox address in name@domain form.
func (i *Inbox) EmailAddress() string {
	return i.address.String()
}

// Provider returns the type of the provider that created the inbox.
func (i *Inbox) Provider() ProviderType {
	return i.provider
}

// FetchMessages retrieves the messages currently in the inbox. Each call is a
// full server round trip. Concurrent calls wait for each other; a caller whose
// context ends while waiting gets an error matching ErrTransport.
func (i *Inbox) FetchMessages(ctx context.Context) ([]Message, error) {
	if i.sem == nil {
		return nil, &MessageFetcherError{Kind: FetchErrorFailed, Detail: "inbox was not created with NewInbox"}
	}

	ctx, span := i.tracer.Start(ctx, spanFetchMessages, trace.WithAttributes(
		attrProvider.String(string(i.provider)),
		attrAddress.String(i.address.String()),
	))
	defer span.End()

	messages, err := i.fetch(ctx)
	if err != nil {
		kind := FetchErrorUnknown
		var fe *MessageFetcherError
		if errors.As(err, &fe) {
			kind = fe.Kind
		}
		recordError(span, err, kind.String())
		i.logger.Debug("fetch messages failed", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attrMessageCount.Int(len(messages)))
	i.logger.Debug("fetched messages", zap.Int("count", len(messages)))
	return messages, nil
}

func (i *Inbox) fetch(ctx context.Context) ([]Message, error) {
	if i.session == nil {
		return nil, &MessageFetcherError{
			Kind:   FetchErrorFailed,
			Detail: "provider does not support fetching messages",
		}
	}

	if err := i.sem.Acquire(ctx, 1); err != nil {
		return nil, fetchError(err)
	}
	defer i.sem.Release(1)

	messages, err := i.session.FetchMessages(ctx)
	if err != nil {
		return nil, fetchError(err)
	}
	return messages, nil
}
