package prototype

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/creational/internal/log"
)

// SpanClone is the span name recorded for every clone.
const SpanClone = "prototype.clone"

// Span attribute keys.
const (
	AttrPrimitive = attribute.Key("prototype.primitive")
	AttrSourceID  = attribute.Key("prototype.source_id")
	AttrCloneID   = attribute.Key("prototype.clone_id")
	AttrName      = attribute.Key("prototype.name")
)

// Cloner clones roots and records each clone as a span.
type Cloner struct {
	tracer trace.Tracer
}

// NewCloner returns a Cloner. A nil tracer is replaced with a no-op tracer.
func NewCloner(tracer trace.Tracer) *Cloner {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Cloner{tracer: tracer}
}

// Clone clones src. It never fails; ctx only carries the parent span.
func (c *Cloner) Clone(ctx context.Context, src *Root) *Root {
	_, span := c.tracer.Start(ctx, SpanClone,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrPrimitive.Int(src.Primitive),
			AttrSourceID.String(src.ID.String()),
		),
	)
	defer span.End()

	clone := src.Clone()
	span.SetAttributes(AttrCloneID.String(clone.ID.String()))

	log.Debug(log.CatPrototype, "Cloned root",
		"source", src.ID, "clone", clone.ID, "primitive", clone.Primitive)
	return clone
}
