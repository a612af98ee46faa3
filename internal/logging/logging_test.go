package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "text format to file", cfg: Config{Level: "debug", Format: "text", Path: filepath.Join(tmpDir, "a", "taskmgr.log")}},
		{name: "invalid level", cfg: Config{Level: "invalid"}, wantErr: true},
		{name: "invalid format", cfg: Config{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, logger.Close())
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "debug"}, &buf)
	require.NoError(t, err)

	logger.WithComponent("manager").Debug().Str("id", "t-1").Msg("task admitted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "manager", entry["component"])
	assert.Equal(t, "t-1", entry["id"])
	assert.Equal(t, "task admitted", entry["message"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmgr.log")
	logger, err := New(Config{Level: "info", Path: path})
	require.NoError(t, err)
	logger.Info().Msg("written")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info().Msg("discarded")
	assert.NoError(t, logger.Close())
}
