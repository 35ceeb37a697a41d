package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds the settings of the graph response cache.
type CacheConfig struct {
	GraphQLLRUSize       int
	GraphQLLRUTTLMinutes int
	EnableLRUCache       bool
}

const (
	defaultGraphQLLRUSize    = 5000
	defaultGraphQLTTLMinutes = 60
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		GraphQLLRUSize:       getEnvInt("CACHE_GRAPHQL_LRU_SIZE", defaultGraphQLLRUSize),
		GraphQLLRUTTLMinutes: getEnvInt("CACHE_GRAPHQL_TTL_MINUTES", defaultGraphQLTTLMinutes),
		EnableLRUCache:       getEnvBool("CACHE_ENABLE_LRU", true),
	}

	if config.GraphQLLRUSize <= 0 {
		log.Warn().Int("GraphQLLRUSize", config.GraphQLLRUSize).Msg("Non-positive cache size, using default")
		config.GraphQLLRUSize = defaultGraphQLLRUSize
	}

	log.Debug().
		Int("GraphQLLRUSize", config.GraphQLLRUSize).
		Int("GraphQLLRUTTLMinutes", config.GraphQLLRUTTLMinutes).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetGraphQLLRUTTL() time.Duration {
	return time.Duration(c.GraphQLLRUTTLMinutes) * time.Minute
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
