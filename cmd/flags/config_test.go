package flags

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected Config
		wantErr  bool
	}{
		{
			name:     "empty file keeps defaults",
			content:  "",
			expected: DefaultConfig(),
		},
		{
			name: "all keys",
			content: `
endpoint = "registry.internal:3000"
call_timeout = "5s"
max_msg_bytes = 8388608
`,
			expected: Config{Endpoint: "registry.internal:3000", CallTimeout: 5 * time.Second, MaxMsgBytes: 8388608},
		},
		{
			name:     "partial overlay",
			content:  `call_timeout = "250ms"`,
			expected: Config{Endpoint: DefaultEndpoint, CallTimeout: 250 * time.Millisecond},
		},
		{
			name:    "bad duration",
			content: `call_timeout = "soon"`,
			wantErr: true,
		},
		{
			name:    "blank endpoint",
			content: `endpoint = "  "`,
			wantErr: true,
		},
		{
			name:    "negative message size",
			content: `max_msg_bytes = -1`,
			wantErr: true,
		},
		{
			name:    "invalid toml",
			content: `endpoint = `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
