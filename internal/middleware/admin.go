package middleware

import (
	"errors"
	"net/http"

	"alternus-gallery-io/api/internal/auth"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AdminOnly restricts a route group to gallery staff with a valid, not yet
// blacklisted access token. The verified claim is stored on the context
// under "admin".
func AdminOnly(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractToken(c)
		if tokenString == "" {
			util.HandleError(c, http.StatusUnauthorized, errors.New("request does not contain an access token"))
			c.Abort()
			return
		}

		claim, err := auth.ValidateToken(tokenString)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if !auth.IsTokenValid(rdb, tokenString) {
			util.HandleError(c, http.StatusUnauthorized, errors.New("token has been revoked, please login again"))
			c.Abort()
			return
		}

		c.Set("admin", claim)
		c.Next()
	}
}
