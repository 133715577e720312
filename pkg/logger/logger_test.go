package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("descartado")
	l.Child("apiclient").Warn().Str("path", "/products").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info no debe escribirse con nivel warn")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "apiclient", entry["component"])
	assert.Equal(t, "/products", entry["path"])
	assert.Equal(t, "visible", entry["message"])
}

func TestParseLevel_Desconocido(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
}
