package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCacheConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected *CacheConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			expected: &CacheConfig{
				GraphQLLRUSize:       defaultGraphQLLRUSize,
				GraphQLLRUTTLMinutes: defaultGraphQLTTLMinutes,
				EnableLRUCache:       true,
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"CACHE_GRAPHQL_LRU_SIZE":    "250",
				"CACHE_GRAPHQL_TTL_MINUTES": "5",
				"CACHE_ENABLE_LRU":          "false",
			},
			expected: &CacheConfig{
				GraphQLLRUSize:       250,
				GraphQLLRUTTLMinutes: 5,
				EnableLRUCache:       false,
			},
		},
		{
			name: "invalid values fall back",
			env: map[string]string{
				"CACHE_GRAPHQL_LRU_SIZE":    "lots",
				"CACHE_GRAPHQL_TTL_MINUTES": "-",
			},
			expected: &CacheConfig{
				GraphQLLRUSize:       defaultGraphQLLRUSize,
				GraphQLLRUTTLMinutes: defaultGraphQLTTLMinutes,
				EnableLRUCache:       true,
			},
		},
		{
			name: "non-positive size falls back",
			env: map[string]string{
				"CACHE_GRAPHQL_LRU_SIZE": "0",
				"CACHE_ENABLE_LRU":       "yes",
			},
			expected: &CacheConfig{
				GraphQLLRUSize:       defaultGraphQLLRUSize,
				GraphQLLRUTTLMinutes: defaultGraphQLTTLMinutes,
				EnableLRUCache:       true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tt.expected, GetCacheConfig())
		})
	}
}

func TestGetGraphQLLRUTTL(t *testing.T) {
	cfg := &CacheConfig{GraphQLLRUTTLMinutes: 15}
	assert.Equal(t, 15*time.Minute, cfg.GetGraphQLLRUTTL())
}
