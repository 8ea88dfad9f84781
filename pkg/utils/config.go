package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// GatewayConfig controls the simulated payment gateway. The sentinel amount
// always produces a declined outcome so the failure path stays reachable.
type GatewayConfig struct {
	MinDelay       time.Duration
	MaxDelay       time.Duration
	Timeout        time.Duration
	SuccessRate    float64
	SentinelAmount int64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GATEWAY_MIN_DELAY_MS", 2000)
	viper.SetDefault("GATEWAY_MAX_DELAY_MS", 3000)
	viper.SetDefault("GATEWAY_TIMEOUT_MS", 10000)
	viper.SetDefault("GATEWAY_SUCCESS_RATE", 0.9)
	viper.SetDefault("GATEWAY_SENTINEL_AMOUNT", 1337)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Gateway: GatewayConfig{
			MinDelay:       time.Duration(viper.GetInt("GATEWAY_MIN_DELAY_MS")) * time.Millisecond,
			MaxDelay:       time.Duration(viper.GetInt("GATEWAY_MAX_DELAY_MS")) * time.Millisecond,
			Timeout:        time.Duration(viper.GetInt("GATEWAY_TIMEOUT_MS")) * time.Millisecond,
			SuccessRate:    viper.GetFloat64("GATEWAY_SUCCESS_RATE"),
			SentinelAmount: viper.GetInt64("GATEWAY_SENTINEL_AMOUNT"),
		},
	}

	return config, nil
}
