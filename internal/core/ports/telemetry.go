package ports

import (
	"context"
	"io"

	"go.trai.ch/rv/internal/core/domain"
)

// Tracer is the entry point for creating spans around resolver and sync
// phases (§9 "Progress reporting is a collaborator, not a core concern").
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	End()
	RecordError(err error)
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct{}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// ProgressSink receives well-defined sync-engine events (§9). Unlike
// Tracer/Span, which model timing and attribution for observability
// backends, ProgressSink models the plan-execution event stream a CLI or
// other frontend renders directly.
type ProgressSink interface {
	OnEvent(domain.ProgressEvent)
}
