package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_BeforeInitIsSilent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	log := Get()
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestInit_WritesJSON(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Debug().Str("patient", "p-1").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "loaded", entry["message"])
	assert.Equal(t, "p-1", entry["patient"])
	assert.Equal(t, "hospital-api", entry["service"])
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "error", Output: &first})
	log := Init(Options{Level: "debug", Output: &second})

	log.Info().Msg("dropped")
	log.Error().Msg("kept")

	assert.Empty(t, second.String())
	assert.Contains(t, first.String(), "kept")
	assert.NotContains(t, first.String(), "dropped")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}
