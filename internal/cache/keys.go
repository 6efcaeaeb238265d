package cache

import "strings"

const (
	GlobalKeyPrefix = "quizcraft"
)

// GenerateCacheKey builds "<prefix>:<service>:<objectType>:<identifier>".
func GenerateCacheKey(serviceName, objectType, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
}

// RateLimitKey is the counter key of one client in the rate limiter.
func RateLimitKey(clientID string) string {
	return GenerateCacheKey("ratelimit", "client", clientID)
}
