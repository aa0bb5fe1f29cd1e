package ephemeralmail

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ephemeralmail/client-go"

// Span names.
const (
	spanCreateInbox   = "ephemeralmail.CreateInbox"
	spanFetchMessages = "ephemeralmail.FetchMessages"
)

// Span attribute keys.
const (
	attrProvider     = attribute.Key("ephemeralmail.provider")
	attrDomain       = attribute.Key("ephemeralmail.domain")
	attrAddress      = attribute.Key("ephemeralmail.address")
	attrMessageCount = attribute.Key("ephemeralmail.message_count")
	attrErrorKind    = attribute.Key("ephemeralmail.error_kind")
)

// newTracer returns a tracer from tp, or from the global provider when tp is
// nil. The global provider is a no-op until the application installs one.
func newTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(instrumentationName)
}

// recordError marks span as failed with err.
func recordError(span trace.Span, err error, kind string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attrErrorKind.String(kind))
}
