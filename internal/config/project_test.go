package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dataexplorer/internal/config"
)

func writeProjectConfig(t *testing.T, root, body string) string {
	t.Helper()
	dir := filepath.Join(root, ".dataexplorer")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func noEnv(string) (string, bool) { return "", false }

func TestFindProjectDir(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	want := writeProjectConfig(t, root, "display:\n  page_size: 25\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o700))

	assert.Equal(t, want, config.FindProjectDir(nested))
	assert.Equal(t, want, config.FindProjectDir(root))
}

func TestFindProjectDir_NoProject(t *testing.T) {
	isolate(t)
	assert.Empty(t, config.FindProjectDir(t.TempDir()))
}

func TestFindProjectDir_DirectoryWithoutConfig(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".dataexplorer"), 0o700))

	assert.Empty(t, config.FindProjectDir(root))
}

func TestFindProjectDir_SkipsUserDir(t *testing.T) {
	home := isolate(t)
	writeProjectConfig(t, home, "display:\n  page_size: 25\n")

	assert.Empty(t, config.FindProjectDir(home))
}

func TestResolveProjectDir(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	found := writeProjectConfig(t, root, "")
	other := t.TempDir()

	tests := []struct {
		name   string
		lookup func(string) (string, bool)
		want   string
	}{
		{name: "walk up", lookup: noEnv, want: found},
		{
			name: "env names the project root",
			lookup: func(string) (string, bool) {
				return other, true
			},
			want: filepath.Join(other, ".dataexplorer"),
		},
		{
			name: "env names the directory itself",
			lookup: func(string) (string, bool) {
				return filepath.Join(other, ".dataexplorer"), true
			},
			want: filepath.Join(other, ".dataexplorer"),
		},
		{
			name: "blank env falls back to walk up",
			lookup: func(string) (string, bool) {
				return "  ", true
			},
			want: found,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.ResolveProjectDir(tt.lookup, root))
		})
	}
}

func TestLoad_ProjectConfigOverlaysUserConfig(t *testing.T) {
	home := isolate(t)
	writeProjectConfig(t, home, "api:\n  url: http://user.example:8000\ndisplay:\n  page_size: 50\n")

	project := t.TempDir()
	writeProjectConfig(t, project, "display:\n  page_size: 25\n")
	t.Chdir(project)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://user.example:8000", cfg.API.URL)
	assert.Equal(t, 25, cfg.Display.PageSize)
}

func TestLoad_ExplicitPathSkipsProjectConfig(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeProjectConfig(t, project, "display:\n  page_size: 25\n")
	t.Chdir(project)

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("display:\n  page_size: 100\n"), 0o600))

	cfg, err := config.Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Display.PageSize)
}

func TestLoad_BrokenProjectConfig(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeProjectConfig(t, project, "display: [unterminated\n")
	t.Chdir(project)

	_, err := config.Load("")
	require.Error(t, err)
}
