// Package redis wraps the Redis client. This file holds connection setup;
// the client is created from the toml config with github.com/redis/go-redis/v9.
package redis

import (
	"strconv"

	"github.com/redis/go-redis/v9"

	"susu_ledger_server/internal/config"
	"susu_ledger_server/pkg/constants"
)

var redisClient *redis.Client

var cacheService AsyncCacheService

// Init connects to Redis and starts the cache worker pool.
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	redisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.Db,
		PoolSize:     50,
		MinIdleConns: 15,
		DialTimeout:  constants.REDIS_TIMEOUT,
		ReadTimeout:  constants.REDIS_TIMEOUT,
		WriteTimeout: constants.REDIS_TIMEOUT,
	})

	cacheService = NewRedisCache(redisClient, 15, 3000)
}

// GetCacheService returns the cache service for dependency injection.
func GetCacheService() AsyncCacheService {
	return cacheService
}

// GetClient exposes the raw client for the group locker, which needs
// SET NX and atomic compare-delete rather than plain cache semantics.
func GetClient() *redis.Client {
	return redisClient
}
