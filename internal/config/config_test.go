package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "hello_world", cfg.Initial)
	assert.Equal(t, "go run {file}", cfg.Demo.Command)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty examples dir", func(c *Config) { c.ExamplesDir = "" }},
		{"unknown markdown style", func(c *Config) { c.UI.MarkdownStyle = "neon" }},
		{"zero docs width", func(c *Config) { c.UI.DocsWidth = 0 }},
		{"blank demo command", func(c *Config) { c.Demo.Command = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.ExamplesDir = filepath.Join(dir, "examples")
	cfg.Initial = "counter"
	cfg.UI.CodeStyle = "github"
	cfg.UI.Watch = true
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LocalFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
examples_dir = "demos"
initial = "counter"

[ui]
markdown_style = "notty"
`), 0o644))

	cfg, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demos"), cfg.ExamplesDir, "relative dirs resolve against the config file")
	assert.Equal(t, "counter", cfg.Initial)
	assert.Equal(t, "notty", cfg.UI.MarkdownStyle)
	assert.Equal(t, 80, cfg.UI.DocsWidth)
	assert.Equal(t, "go run {file}", cfg.Demo.Command)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()
	svc := NewConfigServiceAt(filepath.Join(dir, "config.toml"))

	_, err := svc.LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "config file not found")

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("initial = ["), 0o644))
	_, err = svc.LoadFromPath(broken)
	assert.ErrorContains(t, err, "failed to parse config")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[ui]\nmarkdown_style = \"neon\"\n"), 0o644))
	_, err = svc.LoadFromPath(invalid)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "none.toml"))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("initial = \"custom\"\n"), 0o644))

		cfg, used, err := Resolve(path, "")
		require.NoError(t, err)
		assert.Equal(t, path, used)
		assert.Equal(t, "custom", cfg.Initial)
		assert.Equal(t, filepath.Join(dir, "examples"), cfg.ExamplesDir)
	})

	t.Run("local file in examples dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, LocalFileName), []byte("initial = \"local\"\n"), 0o644))

		cfg, used, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, LocalFileName), used)
		assert.Equal(t, "local", cfg.Initial)
		assert.Equal(t, dir, cfg.ExamplesDir)
	})

	t.Run("dir overrides examples_dir", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		dir := t.TempDir()

		cfg, _, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.ExamplesDir)
		assert.Equal(t, "hello_world", cfg.Initial)
	})
}
