package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantKey string
		wantVal interface{}
		wantErr bool
	}{
		{
			name:    "bare object",
			raw:     `{"hook":"hola"}`,
			wantKey: "hook",
			wantVal: "hola",
		},
		{
			name:    "markdown fenced",
			raw:     "```json\n{\"hook\":\"hola\"}\n```",
			wantKey: "hook",
			wantVal: "hola",
		},
		{
			name:    "prose around object",
			raw:     "Aquí está el contenido:\n{\"offer\":\"descuento\"}\nEspero que sirva.",
			wantKey: "offer",
			wantVal: "descuento",
		},
		{
			name:    "nested braces",
			raw:     `{"outer":{"inner":1}}`,
			wantKey: "outer",
			wantVal: map[string]interface{}{"inner": float64(1)},
		},
		{
			name:    "no object at all",
			raw:     "lo siento, no puedo generar eso",
			wantErr: true,
		},
		{
			name:    "malformed object",
			raw:     `{"hook": "sin cierre`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVal, got[tt.wantKey])
		})
	}
}

func TestExtract_StripsControlChars(t *testing.T) {
	raw := "{\"hook\":\"hola\"\x01\x02 }"
	got, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "hola", got["hook"])
}
