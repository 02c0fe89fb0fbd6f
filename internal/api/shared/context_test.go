package shared

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), traceID)

	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)
}

func TestGenerateTraceIDUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateTraceID()
		assert.Len(t, id, TraceIDLength*2)
		assert.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestPlayerContext(t *testing.T) {
	t.Parallel()

	_, ok := PlayerFromContext(context.Background())
	assert.False(t, ok)

	_, ok = PlayerFromContext(WithPlayer(context.Background(), ""))
	assert.False(t, ok)

	player, ok := PlayerFromContext(WithPlayer(context.Background(), "ada"))
	assert.True(t, ok)
	assert.Equal(t, "ada", player)
}
