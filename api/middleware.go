package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/i18n"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

func lang(c *gin.Context) string {
	return i18n.Lang(c.GetHeader("Accept-Language"))
}

func message(c *gin.Context, key string) string {
	return i18n.Message(key, lang(c))
}

// AuthRequired resolves the bearer token into a verified user id and stores
// it on the request context. Auth failures are always surfaced, never
// silently retried.
func AuthRequired(authSvc auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": message(c, "token_missing")})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": message(c, "token_invalid")})
			return
		}

		userID, err := authSvc.Verify(c.Request.Context(), parts[1])
		if err != nil {
			key := "token_invalid"
			switch {
			case errors.Is(err, domain.ErrTokenMissing):
				key = "token_missing"
			case errors.Is(err, domain.ErrTokenExpired):
				key = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": message(c, key)})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// NotFoundHandler localizes the fallback 404.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": message(c, "not_found")})
}
