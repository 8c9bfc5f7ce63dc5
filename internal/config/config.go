package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LocalFileName is the per-directory config looked up in the examples directory.
const LocalFileName = ".showcase.toml"

// Config represents the application configuration
type Config struct {
	Version     int        `toml:"version"`
	ExamplesDir string     `toml:"examples_dir"`
	Initial     string     `toml:"initial"`
	Placeholder string     `toml:"placeholder"`
	UI          UISettings `toml:"ui"`
	Demo        Demo       `toml:"demo"`
	Log         Log        `toml:"log"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CodeStyle     string `toml:"code_style"`     // chroma style name
	MarkdownStyle string `toml:"markdown_style"` // glamour style, or "auto"
	DocsWidth     int    `toml:"docs_width"`
	Mouse         bool   `toml:"mouse"`
	Watch         bool   `toml:"watch"`
}

// Demo configures how an example's demo is launched
type Demo struct {
	// Command is split shell-style; "{file}" and "{dir}" are substituted.
	Command string `toml:"command"`
}

// Log configures the log file
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

var markdownStyles = map[string]bool{
	"auto": true, "dark": true, "light": true, "notty": true,
	"ascii": true, "pink": true, "dracula": true,
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.ExamplesDir == "" {
		return errors.New("examples_dir must not be empty")
	}
	if !markdownStyles[c.UI.MarkdownStyle] {
		return fmt.Errorf("unknown markdown_style %q", c.UI.MarkdownStyle)
	}
	if c.UI.DocsWidth <= 0 {
		return fmt.Errorf("docs_width must be positive, got %d", c.UI.DocsWidth)
	}
	if strings.TrimSpace(c.Demo.Command) == "" {
		return errors.New("demo.command must not be empty")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "showcase", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, or the defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// A relative examples_dir is relative to the config file
	if !filepath.IsAbs(cfg.ExamplesDir) {
		cfg.ExamplesDir = filepath.Join(filepath.Dir(path), cfg.ExamplesDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Resolve picks the configuration for a run: an explicit path wins, then a
// .showcase.toml inside dir, then the user config file, then the defaults.
// A non-empty dir always overrides examples_dir.
func Resolve(explicit, dir string) (*Config, string, error) {
	var (
		cfg  *Config
		path string
		err  error
	)

	switch {
	case explicit != "":
		path = explicit
		cfg, err = NewConfigServiceAt(explicit).LoadFromPath(explicit)
	case dir != "" && fileExists(filepath.Join(dir, LocalFileName)):
		path = filepath.Join(dir, LocalFileName)
		cfg, err = NewConfigServiceAt(path).LoadFromPath(path)
	default:
		svc := NewConfigService()
		path = svc.Path()
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if dir != "" {
		cfg.ExamplesDir = dir
	}
	abs, err := filepath.Abs(cfg.ExamplesDir)
	if err != nil {
		return nil, "", fmt.Errorf("error resolving path: %w", err)
	}
	cfg.ExamplesDir = abs
	return cfg, path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		ExamplesDir: "examples",
		Initial:     "hello_world",
		Placeholder: "search examples (s)",
		UI: UISettings{
			CodeStyle:     "monokai",
			MarkdownStyle: "auto",
			DocsWidth:     80,
			Mouse:         true,
		},
		Demo: Demo{
			Command: "go run {file}",
		},
		Log: Log{
			File:  "showcase.log",
			Level: "info",
		},
	}
}
