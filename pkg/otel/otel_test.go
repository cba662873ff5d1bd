package otel_test

import (
	"bytes"
	"context"
	"testing"

	smartotel "github.com/nawi-n/SmartCart/pkg/otel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := smartotel.Init(context.Background(), smartotel.Config{UseStdout: true, Writer: &buf})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "agent.Execute")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name": "agent.Execute"`)
	assert.Contains(t, buf.String(), "smartcart")
}

func TestInitWithoutExporter(t *testing.T) {
	shutdown, err := smartotel.Init(context.Background(), smartotel.Config{ServiceName: "smartcart-test"})
	require.NoError(t, err)
	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, shutdown(context.Background()))
}
