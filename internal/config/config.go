// Package config loads and saves remanager's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "REMANAGER_LOG_LEVEL"

// Config holds all remanager configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Currency   CurrencyConfig   `toml:"currency"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	UpcomingWindowDays int    `toml:"upcoming_window_days" validate:"gte=1,lte=365"`
	ExportDir          string `toml:"export_dir,omitempty"`
	DefaultUnit        string `toml:"default_unit,omitempty"`
}

// CurrencyConfig controls how amounts are displayed. Locale is a BCP 47
// tag used for digit grouping; Code is printed before every amount.
type CurrencyConfig struct {
	Locale            string `toml:"locale" validate:"required,bcp47_language_tag"`
	Code              string `toml:"code" validate:"required,len=3,alpha,uppercase"`
	MinFractionDigits int    `toml:"min_fraction_digits" validate:"gte=0,lte=6"`
	MaxFractionDigits int    `toml:"max_fraction_digits" validate:"gte=0,lte=6,gtefield=MinFractionDigits"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings. An empty File keeps the TUI silent.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `toml:"file,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			UpcomingWindowDays: 30,
		},
		Currency: DefaultCurrency(),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultCurrency is UAE dirhams with no fraction digits.
func DefaultCurrency() CurrencyConfig {
	return CurrencyConfig{Locale: "en-AE", Code: "AED"}
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		msgs[i] = fmt.Sprintf("%s: %v fails %s", field, fe.Value(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "remanager")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "remanager")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path. Missing keys keep their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the config location
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = strings.ToLower(lvl)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo validates cfg and writes it to path.
func SaveTo(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the config location
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ExportPath returns the directory exports are written to, defaulting to the
// working directory.
func (g GeneralConfig) ExportPath() string {
	if g.ExportDir == "" {
		return "."
	}
	if strings.HasPrefix(g.ExportDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, g.ExportDir[2:])
		}
	}
	return g.ExportDir
}
