package config

import "time"

// RedisConfig configures the checkout attempt store. An empty Addr falls
// back to the in-process store (single-instance deployments).
type RedisConfig struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	AttemptTTL time.Duration `yaml:"attempt_ttl"`
}
