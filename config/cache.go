package config

import (
	"errors"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

var _ Defaults = (*CacheConfig)(nil)
var _ Validator = (*CacheConfig)(nil)

type CacheMode string

const (
	CacheModeMemory CacheMode = "memory"
	CacheModeRedis  CacheMode = "redis"
	CacheModeNone   CacheMode = "none"
)

type CacheConfig struct {
	Mode    CacheMode   `mapstructure:"mode"`
	Options interface{} `mapstructure:"options"`
}

func (c CacheConfig) Defaults() map[string]any {
	return map[string]any{
		"mode": string(CacheModeNone),
	}
}

func (c CacheConfig) Validate() error {
	switch c.Mode {
	case CacheModeRedis:
		redis, ok := c.Options.(*RedisConfig)
		if !ok {
			return errors.New("core.db.cache.options must hold a redis config when mode is redis")
		}
		return redis.Validate()
	case CacheModeMemory, CacheModeNone, CacheMode(""):
		return nil
	default:
		return errors.New("core.db.cache.mode must be one of: memory, redis, none")
	}
}

type MemoryConfig struct {
}

func cacheConfigHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Map || t != reflect.TypeOf(CacheConfig{}) {
			return data, nil
		}

		var cacheConfig CacheConfig
		if err := mapstructure.Decode(data, &cacheConfig); err != nil {
			return nil, err
		}

		switch cacheConfig.Mode {
		case CacheModeRedis:
			redisOptions := &RedisConfig{Address: defaultRedisAddress}
			if err := mapstructure.WeakDecode(cacheConfig.Options, redisOptions); err != nil {
				return nil, err
			}
			cacheConfig.Options = redisOptions
		case CacheModeMemory:
			cacheConfig.Options = MemoryConfig{}
		default:
			cacheConfig.Options = nil
			cacheConfig.Mode = CacheModeNone
		}

		return cacheConfig, nil
	}
}
