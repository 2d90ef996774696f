package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"

	"wordbubble/internal/validation"
)

// AnonymousClient is the identifier used when no client IP header is usable.
const AnonymousClient = "anonymous"

// RateLimitMessage is returned with 429 responses.
const RateLimitMessage = "Rate limit exceeded. Please try again later."

// ClientIdentifier returns the rate limit key for a request: the first
// X-Forwarded-For entry if it is an IP, else X-Real-IP if it is an IP,
// else AnonymousClient.
func ClientIdentifier(c fiber.Ctx) string {
	return clientIdentifierFromHeaders(c.Get(fiber.HeaderXForwardedFor), c.Get("X-Real-IP"))
}

func clientIdentifierFromHeaders(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); validation.IsValidIP(first) {
			return first
		}
	}
	if realIP = strings.TrimSpace(realIP); validation.IsValidIP(realIP) {
		return realIP
	}
	return AnonymousClient
}

// RateLimitConfig configures NewRateLimiter.
type RateLimitConfig struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage // nil keeps counters in memory
}

// NewRateLimiter limits each client identifier to Max requests per Window.
func NewRateLimiter(cfg RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          cfg.Max,
		Expiration:   cfg.Window,
		KeyGenerator: ClientIdentifier,
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": RateLimitMessage,
			})
		},
		Storage:                cfg.Storage,
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
	})
}

// NewRedisStorage connects limiter storage to the Redis server at url.
// The storage driver pings on construction and panics when the server is
// unreachable; that panic is returned as an error.
func NewRedisStorage(url string) (storage *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			storage = nil
			err = fmt.Errorf("connect rate limit storage: %v", r)
		}
	}()
	return redis.New(redis.Config{URL: url}), nil
}
