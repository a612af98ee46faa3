package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("taskmgr", "0.0.1", exporter))

	ctx, span := StartSpan(context.Background(), "taskmgr.add")
	span.WithAttributes(map[string]string{"priority": "high"}).WithInt("size", 3).WithBool("added", true)
	current, ok := SpanFromContext(ctx)
	assert.True(t, ok)
	assert.NotNil(t, current)
	EndSpan(span, errors.New("full"))

	_, ok = SpanFromContext(context.Background())
	assert.False(t, ok)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "taskmgr.add", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "full", spans[0].Status.Description)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "high", attrs["priority"])
	assert.Equal(t, "3", attrs["size"])
	assert.Equal(t, "true", attrs["added"])

	var nilSpan *Span
	EndSpan(nilSpan, nil)
	assert.Nil(t, nilSpan.WithInt("x", 1))
}
