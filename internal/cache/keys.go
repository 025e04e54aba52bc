package cache

import "fmt"

// RateLimitKey is the per-API-key request counter for the current window.
func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("tunehub:ratelimit:%s", keyPrefix)
}
