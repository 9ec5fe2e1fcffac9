package services

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// entityOperations counts service calls by entity, operation and outcome.
var entityOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "entity_operations_total",
		Help: "Entity service operations by entity, operation and outcome.",
	},
	[]string{"entity", "op", "outcome"},
)

// begin opens a span on the services/<Entity>Service tracer. The returned
// func ends the span and counts the operation; call it with the method's
// final error.
func begin(ctx context.Context, entity, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := otel.Tracer("services/"+entity+"Service").Start(ctx, op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		out := outcome(err)
		if out == "error" {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("outcome", out))
		entityOperations.WithLabelValues(strings.ToLower(entity), op, out).Inc()
		span.End()
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrFriendNotFound), errors.Is(err, ErrGameNotFound), errors.Is(err, ErrLoanNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidSort),
		errors.Is(err, ErrUnknownReference):
		return "invalid"
	case errors.Is(err, ErrFriendInUse), errors.Is(err, ErrGameInUse):
		return "conflict"
	default:
		return "error"
	}
}
