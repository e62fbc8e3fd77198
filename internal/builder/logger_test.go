package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legaldoc.log")

	logger, err := setupLogger("debug", config.LogFileConfig{Path: path, MaxSizeMB: 1}, false)
	require.NoError(t, err)

	logger.Info("session started")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"session started"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	_, err := setupLogger("loud", config.LogFileConfig{}, true)
	assert.Error(t, err)
}

func TestSetupLogger_Silent(t *testing.T) {
	logger, err := setupLogger("info", config.LogFileConfig{}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0))
}
