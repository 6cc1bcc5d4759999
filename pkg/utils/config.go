package utils

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides, e.g. FLICKSY_API_BASE_URL.
const EnvPrefix = "FLICKSY_"

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "FLICKSY_CONFIG"

type Config struct {
	API    APIConfig   `koanf:"api"`
	Images ImageConfig `koanf:"images"`
	Log    LogConfig   `koanf:"log"`
	UI     UIConfig    `koanf:"ui"`
}

type APIConfig struct {
	BaseURL     string        `koanf:"base_url"`
	Timeout     time.Duration `koanf:"timeout"`
	SessionPath string        `koanf:"session_path"`
}

type ImageConfig struct {
	BaseURL string `koanf:"base_url"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// UIConfig holds the widget timings. The defaults match what the site ships.
type UIConfig struct {
	CarouselInterval  time.Duration `koanf:"carousel_interval"`
	RemovalDelay      time.Duration `koanf:"removal_delay"`
	ScrollSettleDelay time.Duration `koanf:"scroll_settle_delay"`
	ScrollStep        float64       `koanf:"scroll_step"`
}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:     "http://localhost:5000",
			Timeout:     15 * time.Second,
			SessionPath: defaultSessionPath(),
		},
		Images: ImageConfig{
			BaseURL: "https://image.tmdb.org/t/p",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			CarouselInterval:  5 * time.Second,
			RemovalDelay:      300 * time.Millisecond,
			ScrollSettleDelay: 500 * time.Millisecond,
			ScrollStep:        400,
		},
	}
}

// LoadConfig layers defaults, an optional YAML file and FLICKSY_* variables.
// An empty path falls back to $FLICKSY_CONFIG; a missing file is not an error
// unless it was asked for explicitly.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
		explicit = path != ""
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else if explicit {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	cfg.Images.BaseURL = strings.TrimSuffix(cfg.Images.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps FLICKSY_API_BASE_URL to api.base_url. Section names never
// contain underscores, so only the first one is a separator.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be > 0"))
	}
	if c.Images.BaseURL == "" {
		errs = append(errs, errors.New("images.base_url required"))
	}
	if c.UI.CarouselInterval <= 0 {
		errs = append(errs, errors.New("ui.carousel_interval must be > 0"))
	}
	if c.UI.RemovalDelay < 0 || c.UI.ScrollSettleDelay < 0 {
		errs = append(errs, errors.New("ui delays must be >= 0"))
	}
	if c.UI.ScrollStep <= 0 {
		errs = append(errs, errors.New("ui.scroll_step must be > 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./.flicksy-session.json"
	}
	return filepath.Join(home, ".flicksy", "session.json")
}
