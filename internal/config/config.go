// Package config loads process-wide configuration from the environment and
// an optional YAML file.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	Listen         string        `yaml:"listen" env:"LISTEN_ADDR" env-default:":8080"`
	GeminiAPIKey   string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY" env-default:""`
	Model          string        `yaml:"model" env:"GEMINI_MODEL" env-default:""`
	TempDir        string        `yaml:"temp_dir" env:"TEMP_DIR" env-default:""`
	CleanupPolicy  string        `yaml:"cleanup_policy" env:"CLEANUP_POLICY" env-default:"tracked"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"2m"`
	RateLimit      struct {
		RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_REQUESTS_PER_MINUTE" env-default:"10"`
		TokensPerMinute   int `yaml:"tokens_per_minute" env:"RATE_TOKENS_PER_MINUTE" env-default:"20000"`
	} `yaml:"rate_limit"`
}

// Load reads configuration from path, or from environment variables only
// when path is empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("config: %w; %s", err, desc)
	}

	return cfg, nil
}

// MustLoad is Load that exits the process on failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
