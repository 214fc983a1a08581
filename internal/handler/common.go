package handler

import (
	"strconv" // parse string claims into integers

	"github.com/labstack/echo/v4" // Echo context
)

// getUserID extracts the authenticated user's ID from the Echo context.  The
// JWT middleware stores the raw "sub" claim, which may decode as a float64
// (JSON number) or a string depending on how the token was minted, so we
// normalize both here.  Returns 0 when no usable claim is present.
func getUserID(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case int64:
		return uint64(v)
	case string:
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// getRole returns the authenticated user's role claim, or "" when missing.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}
