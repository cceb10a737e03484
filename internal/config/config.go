// ABOUTME: Configuration loader for the portfolio CLI
// ABOUTME: Merges flags, PORTFOLIO_* environment, .env, config.yaml and defaults

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/markalston/portfolio-admin/internal/session"
)

// EnvPrefix prefixes every environment variable, e.g. PORTFOLIO_API_URL
const EnvPrefix = "PORTFOLIO"

// DefaultAPIURL is the backend used when nothing else is configured
const DefaultAPIURL = "http://localhost:8080/api"

// Config is the complete CLI configuration
type Config struct {
	APIURL    string        `mapstructure:"api_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	ConfigDir string        `mapstructure:"config_dir"`
	Ephemeral bool          `mapstructure:"ephemeral"` // keep the session in memory only
	Log       LogConfig     `mapstructure:"log"`
	Output    OutputConfig  `mapstructure:"output"`
	Cache     CacheConfig   `mapstructure:"cache"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool   `mapstructure:"colors"`
	Color  string `mapstructure:"color"` // auto, always, never
}

// CacheConfig contains query cache settings
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load reads configuration. v may already carry bound command-line flags;
// nil creates a fresh instance. cfgFile overrides the config search path.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("config_dir"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("config_dir", session.DefaultConfigDir())
	v.SetDefault("ephemeral", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.colors", true)
	v.SetDefault("output.color", "auto")

	v.SetDefault("cache.ttl", 5*time.Minute)
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute http(s) URL", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q must use http or https", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir must not be empty")
	}
	c.ConfigDir = filepath.Clean(c.ConfigDir)
	return nil
}

// LogFile is where the dashboard writes its log
func (c *Config) LogFile() string {
	return filepath.Join(c.ConfigDir, "debug.log")
}
