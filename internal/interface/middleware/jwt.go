package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/response"
)

const CtxAccountIDKey = "accountID"

// BearerAuth validates "Authorization: Bearer <accessToken>" and injects the
// account id into context. Used for university writes when enabled in config.
func BearerAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			res := response.Unauthorized()
			c.AbortWithStatusJSON(res.StatusCode, res.Body)
			return
		}
		id, err := jwt.AccountID(strings.TrimSpace(token))
		if err != nil {
			res := response.Unauthorized()
			c.AbortWithStatusJSON(res.StatusCode, res.Body)
			return
		}
		c.Set(CtxAccountIDKey, id)
		c.Next()
	}
}
