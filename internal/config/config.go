package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "ghrest"

// Config represents the ghrest configuration.
type Config struct {
	APIURL         string      `yaml:"apiURL,omitempty"`
	Owner          string      `yaml:"owner,omitempty"`
	Repo           string      `yaml:"repo,omitempty"`
	Format         string      `yaml:"format,omitempty"`
	LogLevel       string      `yaml:"logLevel,omitempty"`
	TimeoutSeconds int         `yaml:"timeoutSeconds,omitempty"`
	EnvFile        string      `yaml:"envFile,omitempty"`
	Guard          GuardConfig `yaml:"guard,omitempty"`
}

// GuardConfig controls the secret guard applied before content is uploaded.
type GuardConfig struct {
	// BlockSecrets is a pointer so a file can turn the guard off explicitly.
	BlockSecrets *bool    `yaml:"blockSecrets,omitempty"`
	BlockPaths   []string `yaml:"blockPaths,omitempty"`
}

// SecretsBlocked reports whether content that looks like a secret is refused.
func (g GuardConfig) SecretsBlocked() bool {
	return g.BlockSecrets == nil || *g.BlockSecrets
}

// Timeout returns the per-invocation request deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns a Config with all defaults applied.
func Default() Config {
	blocked := true
	return Config{
		APIURL:         "https://api.github.com",
		Format:         "text",
		LogLevel:       "warn",
		TimeoutSeconds: 60,
		EnvFile:        ".env",
		Guard: GuardConfig{
			BlockSecrets: &blocked,
			BlockPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for ghrest.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "AppData", "Roaming", appName), nil
	default:
		return filepath.Join(home, ".config", appName), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeoutSeconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

func mergeFile(dst *Config, src Config) {
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.Owner != "" {
		dst.Owner = src.Owner
	}
	if src.Repo != "" {
		dst.Repo = src.Repo
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.EnvFile != "" {
		dst.EnvFile = src.EnvFile
	}
	if src.Guard.BlockSecrets != nil {
		dst.Guard.BlockSecrets = src.Guard.BlockSecrets
	}
	if len(src.Guard.BlockPaths) > 0 {
		dst.Guard.BlockPaths = src.Guard.BlockPaths
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GHREST_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("GHREST_REPO"); v != "" {
		cfg.Repo = v
	}
	if v := os.Getenv("GHREST_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("GHREST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GHREST_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GHREST_TIMEOUT must be an integer number of seconds: %w", err)
		}
		cfg.TimeoutSeconds = n
	}
	if v := os.Getenv("GHREST_ENV_FILE"); v != "" {
		cfg.EnvFile = v
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("flag override: %w", err)
		}
	}
	return nil
}

// Keys lists the names accepted by SetField.
var Keys = []string{
	"apiURL", "owner", "repo", "format", "logLevel", "timeoutSeconds", "envFile",
	"guard.blockSecrets", "guard.blockPaths",
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "apiURL":
		cfg.APIURL = value
	case "owner":
		cfg.Owner = value
	case "repo":
		cfg.Repo = value
	case "format":
		cfg.Format = value
	case "logLevel":
		cfg.LogLevel = value
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "envFile":
		cfg.EnvFile = value
	case "guard.blockSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("guard.blockSecrets must be true or false: %w", err)
		}
		cfg.Guard.BlockSecrets = &b
	case "guard.blockPaths":
		var paths []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Guard.BlockPaths = paths
	default:
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}
