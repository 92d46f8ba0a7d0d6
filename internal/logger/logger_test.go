package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return New(&Config{Level: "debug", Format: "json", Output: buf, ServiceName: "artfolio-test"})
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	ctx := newBufferLogger(&buf).WithContext(context.Background())
	ctx = SetRequestID(ctx, "req-1")
	ctx = SetComponent(ctx, "recommend")

	CtxInfo(ctx, "hello %s", "world")

	entry := lastLine(t, &buf)
	assert.Equal(t, "hello world", entry["message"])
	assert.Equal(t, "req-1", entry[FieldRequestID])
	assert.Equal(t, "recommend", entry[FieldComponent])
	assert.Equal(t, "artfolio-test", entry["service"])
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestEntryMetricFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := newBufferLogger(&buf).WithContext(context.Background())

	With(Fields{FieldStrategy: "department=Modern Art"}).WithCount(12).WithDuration(40).Warn(ctx, "page fetched")

	entry := lastLine(t, &buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "department=Modern Art", entry[FieldStrategy])
	assert.EqualValues(t, 12, entry[FieldCount])
	assert.EqualValues(t, 40, entry[FieldDurationMs])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, GetDefault(), FromContext(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}
