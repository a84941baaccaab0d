package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dataexplorer/internal/config"
)

// newDefaultTarget returns a Config with known non-default values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			URL:     "http://api.internal:8000",
			Timeout: 3 * time.Second,
		},
		Display: config.DisplayConfig{PageSize: 25},
		Logging: config.LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
api:
  url: https://users.example.com
  timeout: 30s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "https://users.example.com", target.API.URL)
	assert.Equal(t, 30*time.Second, target.API.Timeout)

	assert.Equal(t, 25, target.Display.PageSize)
	assert.Equal(t, "warn", target.Logging.Level)
}

func TestShallowMergeYAML_SectionReplacedFromDefaults(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  level: debug
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	// The section is replaced, so the omitted format falls back to the default.
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, target.Logging.Format)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
theme: dark
display:
  page_size: 50
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 50, target.Display.PageSize)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		require.ErrorIs(t, config.ShallowMergeYAML(nil, "x.yaml"), config.ErrNilConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		overlay := writeOverlay(t, "api: [unterminated\n")
		require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), overlay))
	})

	t.Run("wrong section type", func(t *testing.T) {
		overlay := writeOverlay(t, "display:\n  page_size: lots\n")
		err := config.ShallowMergeYAML(newDefaultTarget(), overlay)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"display"`)
	})
}
