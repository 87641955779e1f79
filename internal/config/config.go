package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Output        OutputConfig       `yaml:"output"`
	Diagrams      DiagramConfig      `yaml:"diagrams"`
	History       HistoryConfig      `yaml:"history"`
	Notifications NotificationConfig `yaml:"notifications"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Watch         WatchConfig        `yaml:"watch"`
	Workspace     string             `yaml:"workspace,omitempty"`
	Sources       []Repository       `yaml:"sources,omitempty"`
}

// OutputConfig controls where converted documents are written
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// DiagramConfig controls mermaid diagram rendering
type DiagramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Binary  string `yaml:"binary,omitempty"`
	TempDir string `yaml:"temp_dir,omitempty"`
}

// HistoryConfig controls the conversion event store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// NotificationConfig controls NATS conversion event publishing
type NotificationConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig controls the Prometheus metrics endpoint in watch mode
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen,omitempty"`
}

// WatchConfig controls watch mode behavior
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"` // e.g. "300ms"
	Resync   string `yaml:"resync,omitempty"`   // e.g. "30m"; empty disables periodic resync
}

// Repository represents a Git repository holding markdown sources
type Repository struct {
	URL    string      `yaml:"url"`
	Name   string      `yaml:"name"`
	Branch string      `yaml:"branch,omitempty"`
	Auth   *AuthConfig `yaml:"auth,omitempty"`
	Paths  []string    `yaml:"paths,omitempty"` // Paths to scan for markdown, defaults to ["."]
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Type     string `yaml:"type"` // "ssh", "token", "basic"
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
	KeyPath  string `yaml:"key_path,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, apperrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal, "failed to unmarshal config")
	}

	applyDefaults(&config)
	return &config, nil
}

// LoadOrDefault loads the configuration file when it exists and falls back
// to the built-in defaults when it does not. Conversion works without a
// config file; the file only unlocks the optional subsystems.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFiles()
		return Default(), nil
	}
	return Load(configPath)
}

// DebounceDuration returns the watch debounce interval, falling back to the
// default when unset or unparsable.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// ResyncInterval returns the periodic full-resync interval, or zero when
// periodic resync is disabled.
func (w WatchConfig) ResyncInterval() time.Duration {
	if w.Resync == "" {
		return 0
	}
	d, err := time.ParseDuration(w.Resync)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// loadEnvFiles loads environment variables from .env files. Existing
// environment variables always win.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Note: %s could not be loaded: %v\n", envPath, err)
		}
	}
}
