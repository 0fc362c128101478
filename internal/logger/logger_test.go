package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Debug().Msg("hidden")
	l.Named("storage").Info().Int("files", 2).Msg("saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved", entry["message"])
	assert.Equal(t, "storage", entry["component"])
	assert.EqualValues(t, 2, entry["files"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, DefaultLevel, parseLevel(""))
	assert.Equal(t, DefaultLevel, parseLevel("loud"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Debug().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}

func TestFromContext_NoLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	l.Error().Msg("dropped")
}

func TestNop(t *testing.T) {
	Nop().Error().Msg("nothing")
}
