package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

const requestIDKey = "request_id"

// RequestID keeps an incoming X-Request-Id or assigns a new UUID, stores it
// in the request locals and echoes it on the response.
func RequestID(c fiber.Ctx) error {
	rid := strings.TrimSpace(c.Get(RequestIDHeader))
	if rid == "" || len(rid) > 128 {
		rid = uuid.NewString()
	}
	c.Locals(requestIDKey, rid)
	c.Set(RequestIDHeader, rid)
	return c.Next()
}

// GetRequestID returns the request ID assigned by RequestID, or "".
func GetRequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
