// Package config loads the gateway settings from defaults, an optional config
// file, WORDGATE_* environment variables, and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/drblury/wordgate/mirror"
	"github.com/drblury/wordgate/upstream"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WORDGATE"

// Config is the complete gateway configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Log      LogConfig      `mapstructure:"log"`
	Mirror   MirrorConfig   `mapstructure:"mirror"`
}

// ServerConfig controls the inbound HTTP server.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	ProbeUpstreams bool          `mapstructure:"probe_upstreams"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	Validate       bool          `mapstructure:"validate"`
}

// UpstreamConfig locates the third-party services.
type UpstreamConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	WordURL         string        `mapstructure:"word_url"`
	WordLengthParam string        `mapstructure:"word_length_param"`
	ArticleURL      string        `mapstructure:"article_url"`
	ArticleCacheTTL time.Duration `mapstructure:"article_cache_ttl"`
	JokeURL         string        `mapstructure:"joke_url"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MirrorConfig enables the MongoDB frequency mirror when URI is set.
type MirrorConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Interval   time.Duration `mapstructure:"interval"`
}

// Enabled reports whether a MongoDB URI was configured.
func (m MirrorConfig) Enabled() bool {
	return strings.TrimSpace(m.URI) != ""
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.probe_timeout", 2*time.Second)
	v.SetDefault("server.probe_upstreams", false)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.validate", true)

	v.SetDefault("upstream.timeout", upstream.DefaultTimeout)
	v.SetDefault("upstream.word_url", upstream.DefaultWordURL)
	v.SetDefault("upstream.word_length_param", upstream.DefaultLengthParam)
	v.SetDefault("upstream.article_url", upstream.DefaultArticleURL)
	v.SetDefault("upstream.article_cache_ttl", 5*time.Minute)
	v.SetDefault("upstream.joke_url", upstream.DefaultJokeURL)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("mirror.uri", "")
	v.SetDefault("mirror.database", "wordgate")
	v.SetDefault("mirror.collection", "word_frequency")
	v.SetDefault("mirror.interval", mirror.DefaultInterval)
}

// Load reads the configuration. configFile may be empty, in which case
// wordgate.{yaml,json,toml} is looked up in the working directory and
// /etc/wordgate; a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("wordgate")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/wordgate")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have no usable fallback.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	for key, value := range map[string]string{
		"upstream.word_url":    c.Upstream.WordURL,
		"upstream.article_url": c.Upstream.ArticleURL,
		"upstream.joke_url":    c.Upstream.JokeURL,
	} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Mirror.Enabled() && (c.Mirror.Database == "" || c.Mirror.Collection == "") {
		errs = append(errs, errors.New("mirror.database and mirror.collection are required when mirror.uri is set"))
	}
	return errors.Join(errs...)
}

// ParseLevel converts a level name such as "debug" into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
