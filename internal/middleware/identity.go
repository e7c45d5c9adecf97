package middleware

// identity.go provides the user identifier used to key rate-limit buckets.
// The value comes from the context entries JWTAuth sets; anonymous
// requests fall back to "anon" so public traffic still buckets per IP.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user ID, or
// "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
