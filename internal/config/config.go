package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Config holds all configuration from environment variables.
type Config struct {
	Token   string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	APIKey  string `envconfig:"GROQ_API_KEY" required:"true"`
	BaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`

	// Generation settings shared by every model in the catalog
	MaxTokens   int           `envconfig:"MAX_TOKENS" default:"500"`
	Temperature float64       `envconfig:"TEMPERATURE" default:"0.7"`
	CallTimeout time.Duration `envconfig:"CALL_TIMEOUT" default:"60s"`

	// Address for the Prometheus endpoint, empty disables it
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`

	// Path to config.toml file
	ConfigFile string `envconfig:"CONFIG_FILE" default:"config.toml"`

	// Catalog loaded from config.toml
	Catalog Catalog
}

// Catalog holds the read-only lists the bot works from. Models are tried in
// order; topics are matched in order.
type Catalog struct {
	Models []string `toml:"models"`
	Topics []string `toml:"topics"`
}

// FileConfig represents the structure of config.toml.
type FileConfig struct {
	Catalog Catalog `toml:"catalog"`
}

// DefaultCatalog is used when config.toml is missing or leaves a list empty.
var DefaultCatalog = Catalog{
	Models: []string{
		"llama-3.3-70b-versatile",
		"llama-3.1-8b-instant",
		"openai/gpt-oss-20b",
	},
	Topics: []string{
		"fé", "esperança", "gratidão", "perdão", "amor", "coragem", "sabedoria",
		"paciência", "confiança", "obediência", "adoração", "humildade",
		"justiça", "salvação", "família", "oração", "libertação", "propósito",
	},
}

// LoadEnv loads the configuration from environment variables.
func (c Config) LoadEnv() (Config, error) {
	cfg := c

	if err := envconfig.Process("", &cfg); err != nil {
		return c, err
	}

	return cfg, nil
}

// LoadFile loads the catalog from config.toml file.
func (c *Config) LoadFile() error {
	configPath := c.ConfigFile
	if !filepath.IsAbs(configPath) {
		// Try current directory first, then the executable directory
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			execPath, err := os.Executable()
			if err == nil {
				configPath = filepath.Join(filepath.Dir(execPath), c.ConfigFile)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		c.Catalog = DefaultCatalog.clone()
		return nil
	}

	var fileConfig FileConfig
	if _, err := toml.DecodeFile(configPath, &fileConfig); err != nil {
		return fmt.Errorf("failed to decode %s: %w", configPath, err)
	}

	c.Catalog = fileConfig.Catalog.withDefaults()

	return nil
}

// Validate checks settings envconfig cannot express.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be within [0, 2], got %v", c.Temperature)
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("CALL_TIMEOUT must not be negative, got %s", c.CallTimeout)
	}
	return nil
}

func (c Catalog) withDefaults() Catalog {
	out := c.clone()
	if len(out.Models) == 0 {
		out.Models = append([]string(nil), DefaultCatalog.Models...)
	}
	if len(out.Topics) == 0 {
		out.Topics = append([]string(nil), DefaultCatalog.Topics...)
	}
	return out
}

func (c Catalog) clone() Catalog {
	return Catalog{
		Models: append([]string(nil), c.Models...),
		Topics: append([]string(nil), c.Topics...),
	}
}

func NewConfig() (*Config, error) {
	var cfg Config
	loadedCfg, err := cfg.LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	if err := loadedCfg.Validate(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			NewConfig,
		),
	)
}
