package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Gemini struct {
	// APIKey is intentionally not required: without it the app still starts
	// and every AI request fails with a service error instead.
	APIKey            string  `env:"GEMINI_API_KEY"`
	BaseURL           string  `yaml:"base_url" env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model             string  `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	Temperature       float32 `yaml:"temperature" env:"MODEL_TEMPERATURE" env-default:"0.7"`
	HistoryTokenLimit int     `yaml:"history_token_limit" env:"HISTORY_TOKEN_LIMIT" env-default:"3500"`
}

type Server struct {
	Port           string   `yaml:"port" env:"PORT" env-default:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

type Config struct {
	Gemini Gemini `yaml:"gemini"`
	Server Server `yaml:"server"`
}

func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(cfgPath); err == nil {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
