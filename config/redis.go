package config

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisAddress = "localhost:6379"

var _ Validator = (*RedisConfig)(nil)
var _ Defaults = (*RedisConfig)(nil)

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) Defaults() map[string]any {
	return map[string]any{
		"address": defaultRedisAddress,
		"db":      0,
	}
}

func (r *RedisConfig) Validate() error {
	if r.Address == "" {
		return errors.New("address is required")
	}
	return nil
}

func (r *RedisConfig) Client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     r.Address,
		Password: r.Password,
		DB:       r.DB,
	})
}
