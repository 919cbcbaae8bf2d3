package auth

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// The upstream gateway authenticates requests and forwards the caller's
// identity in this header.
const UserIDHeader = "X-User-ID"

// GetUserID returns the authenticated user id, or 0 when the header is
// missing or malformed.
func GetUserID(c *gin.Context) int64 {
	raw := c.GetHeader(UserIDHeader)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
