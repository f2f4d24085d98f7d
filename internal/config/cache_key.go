package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminRevokedTokenKey returns the cache key marking a revoked admin JWT.
// The key lives until the token's natural expiry.
func (r *CacheKeyStruct) AdminRevokedTokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// BulkEmailJobKey returns the cache key holding progress counters for a
// bulk email job.
func (r *CacheKeyStruct) BulkEmailJobKey(jobID string) string {
	return fmt.Sprintf("bulkmail:job:%s", jobID)
}

var CacheKey = NewCacheKeyStruct()
