package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to bridge OTel spans emitted
// by resolve/sync phases to a ports.ProgressSink.
type Bridge struct {
	sink ports.ProgressSink
}

// NewBridge returns a new Bridge.
func NewBridge(sink ports.ProgressSink) *Bridge {
	return &Bridge{sink: sink}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.sink == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.sink.OnEvent(domain.ProgressEvent{
		Kind: domain.EventTaskStarted,
		Name: s.Name(),
		At:   s.StartTime(),
	})
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.sink == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	kind := domain.EventTaskDone
	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
		kind = domain.EventTaskFailed
	}

	b.sink.OnEvent(domain.ProgressEvent{
		Kind: kind,
		Name: s.Name(),
		At:   s.EndTime(),
		Err:  err,
	})
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
