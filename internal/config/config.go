package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL         string        `mapstructure:"API_BASE_URL"`
	UserID             string        `mapstructure:"USER_ID"`
	ListenAddr         string        `mapstructure:"LISTEN_ADDR"`
	DatabasePath       string        `mapstructure:"DATABASE_PATH"`
	OutboxDriver       string        `mapstructure:"OUTBOX_DRIVER"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	GenerateTimeout    time.Duration `mapstructure:"GENERATE_TIMEOUT"`
	TypingInterval     time.Duration `mapstructure:"TYPING_INTERVAL"`
	HydrateConcurrency int           `mapstructure:"HYDRATE_CONCURRENCY"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("API_BASE_URL", "http://127.0.0.1:8000")
	viper.SetDefault("USER_ID", "")
	viper.SetDefault("LISTEN_ADDR", ":8088")
	viper.SetDefault("DATABASE_PATH", "./data/chatflow.db")
	viper.SetDefault("OUTBOX_DRIVER", "sqlite")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("GENERATE_TIMEOUT", "120s")
	viper.SetDefault("TYPING_INTERVAL", "30ms")
	viper.SetDefault("HYDRATE_CONCURRENCY", 8)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./client")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return &cfg, nil
}
