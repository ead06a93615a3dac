package constants

import "time"

// AppVersion is reported by the health endpoint and startup log.
const AppVersion = "1.0.0"

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix   = "catalog:"
	CacheKeyCategory = CacheKeyPrefix + "category:"
	CacheKeyPlant    = CacheKeyPrefix + "plant:"
)

// DefaultCacheTTL applies to single-entity reads.
const DefaultCacheTTL = 5 * time.Minute
