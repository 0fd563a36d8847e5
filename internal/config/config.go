package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Email    EmailConfig    `yaml:"email"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/booking.yaml"
	}

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file.
func applyEnvOverrides(cfg *Config) {
	override(&cfg.Service.Razorpay.KeyID, "RAZORPAY_KEY_ID")
	override(&cfg.Service.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET")
	override(&cfg.Service.PayPal.ClientID, "PAYPAL_CLIENT_ID")
	override(&cfg.Service.PayPal.Secret, "PAYPAL_SECRET")
	override(&cfg.Service.SessionSecret, "SESSION_SECRET")
	override(&cfg.Database.Password, "DB_PASSWORD")
	override(&cfg.Redis.Addr, "REDIS_ADDR")
	override(&cfg.Email.Password, "SMTP_PASSWORD")
}

func override(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
