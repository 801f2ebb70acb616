package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name         string   `mapstructure:"name"`
		Port         string   `mapstructure:"port"`
		AllowOrigins []string `mapstructure:"allow_origins"`
	} `mapstructure:"app"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	TCMB struct {
		APIKey          string        `mapstructure:"api_key"`
		BaseURL         string        `mapstructure:"base_url"`
		BulletinURL     string        `mapstructure:"bulletin_url"`
		Timeout         time.Duration `mapstructure:"timeout"`
		MetadataTimeout time.Duration `mapstructure:"metadata_timeout"`
	} `mapstructure:"tcmb"`
}

var defaultPaths = []string{".", "./config", "../config", "../../config"}

// LoadConfig reads config.yaml from the given directories (or the default
// search path), overlaid by environment variables such as TCMB_API_KEY. A
// .env file in the working directory is loaded first when present. A missing
// config file is not an error; the defaults below apply.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = defaultPaths
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("app.name", "tcmb-client")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.allow_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("tcmb.api_key", "")
	v.SetDefault("tcmb.base_url", "https://evds2.tcmb.gov.tr/service/evds")
	v.SetDefault("tcmb.bulletin_url", "https://www.tcmb.gov.tr/kurlar")
	v.SetDefault("tcmb.timeout", 30*time.Second)
	v.SetDefault("tcmb.metadata_timeout", 15*time.Second)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.TCMB.Timeout <= 0 || cfg.TCMB.MetadataTimeout <= 0 {
		return nil, fmt.Errorf("tcmb timeouts must be positive, got %s and %s", cfg.TCMB.Timeout, cfg.TCMB.MetadataTimeout)
	}

	return &cfg, nil
}
