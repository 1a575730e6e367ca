package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	DataLocation   string          `json:"data_location"`
	Listen         string          `json:"listen,omitempty"`
	AllowedOrigins []string        `json:"allowed_origins,omitempty"`
	StaticDir      string          `json:"static_dir,omitempty"`
	Delays         DelayConfig     `json:"delays"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
	Session        SessionConfig   `json:"session"`
	Contact        ContactConfig   `json:"contact,omitempty"`
	Log            LogConfig       `json:"log"`
}

// DelayConfig bounds the two simulated pauses before each answer.
type DelayConfig struct {
	MinMS int `json:"min_ms"`
	MaxMS int `json:"max_ms"`
}

// RateLimitConfig limits submissions per client IP.
type RateLimitConfig struct {
	PerSecond float64 `json:"per_second"`
	Burst     int     `json:"burst"`
}

// SessionConfig controls in-memory session expiry.
type SessionConfig struct {
	IdleTimeoutMinutes int `json:"idle_timeout_minutes"`
}

// ContactConfig tunes the contact answer wording.
type ContactConfig struct {
	MailSubject      string `json:"mail_subject,omitempty"`
	WhatsAppGreeting string `json:"whatsapp_greeting,omitempty"`
	ResponseTime     string `json:"response_time,omitempty"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Mode string `json:"mode,omitempty"`
	File string `json:"file,omitempty"`
}

// Defaults applied by Validate.
const (
	DefaultListen             = ":8080"
	DefaultMinDelayMS         = 600
	DefaultMaxDelayMS         = 900
	DefaultRatePerSecond      = 2.0
	DefaultRateBurst          = 5
	DefaultIdleTimeoutMinutes = 30
	DefaultLogMode            = "dev"
)

// MinDelay returns the lower pause bound.
func (c *Config) MinDelay() (d time.Duration) {
	d = time.Duration(c.Delays.MinMS) * time.Millisecond
	return d
}

// MaxDelay returns the upper pause bound.
func (c *Config) MaxDelay() (d time.Duration) {
	d = time.Duration(c.Delays.MaxMS) * time.Millisecond
	return d
}

// IdleTimeout returns how long an untouched session lives.
func (c *Config) IdleTimeout() (d time.Duration) {
	d = time.Duration(c.Session.IdleTimeoutMinutes) * time.Minute
	return d
}

// DefaultPath returns $HOME/.portfolio-chat/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".portfolio-chat", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable overrides.
// A missing file is not an error when PORTFOLIO_DATA supplies the data location.
func Load(configPath string) (cfg Config, err error) {
	// Pick up a local .env if there is one
	err = godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		err = errors.Wrap(err, "failed to load .env file")
		return cfg, err
	}
	err = nil

	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && os.Getenv("PORTFOLIO_DATA") != "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'portfolio-chat init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	applyEnv(&cfg)

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORTFOLIO_DATA"); v != "" {
		cfg.DataLocation = v
	}
	if v := os.Getenv("PORTFOLIO_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("PORTFOLIO_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv("PORTFOLIO_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
}

// Validate checks that all required configuration is present and fills defaults.
func (c *Config) Validate() (err error) {
	if c.DataLocation == "" {
		err = errors.New("data_location is required (set in config or PORTFOLIO_DATA env var)")
		return err
	}

	if c.Delays.MinMS < 0 || c.Delays.MaxMS < 0 {
		err = errors.New("delays must not be negative")
		return err
	}

	if c.Delays.MinMS == 0 && c.Delays.MaxMS == 0 {
		c.Delays.MinMS = DefaultMinDelayMS
		c.Delays.MaxMS = DefaultMaxDelayMS
	}

	if c.Delays.MaxMS < c.Delays.MinMS {
		err = errors.Errorf("delays.max_ms (%d) is below delays.min_ms (%d)", c.Delays.MaxMS, c.Delays.MinMS)
		return err
	}

	if c.RateLimit.PerSecond < 0 || c.RateLimit.Burst < 0 {
		err = errors.New("rate_limit values must not be negative")
		return err
	}

	// Set defaults
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.RateLimit.PerSecond == 0 {
		c.RateLimit.PerSecond = DefaultRatePerSecond
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = DefaultRateBurst
	}
	if c.Session.IdleTimeoutMinutes == 0 {
		c.Session.IdleTimeoutMinutes = DefaultIdleTimeoutMinutes
	}
	if c.Log.Mode == "" {
		c.Log.Mode = DefaultLogMode
	}

	for i, origin := range c.AllowedOrigins {
		c.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if c.StaticDir != "" {
		_, err = os.Stat(c.StaticDir)
		if os.IsNotExist(err) {
			err = errors.Errorf("static_dir not found: %s", c.StaticDir)
			return err
		}
		err = nil
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		DataLocation:   filepath.Join(dir, "data.json"),
		Listen:         DefaultListen,
		AllowedOrigins: []string{"http://localhost:3000"},
		Delays: DelayConfig{
			MinMS: DefaultMinDelayMS,
			MaxMS: DefaultMaxDelayMS,
		},
		RateLimit: RateLimitConfig{
			PerSecond: DefaultRatePerSecond,
			Burst:     DefaultRateBurst,
		},
		Session: SessionConfig{
			IdleTimeoutMinutes: DefaultIdleTimeoutMinutes,
		},
		Log: LogConfig{
			Mode: DefaultLogMode,
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
