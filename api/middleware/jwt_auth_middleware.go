package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/soundsage/backend/api/controller"
	"github.com/soundsage/backend/internal/tokenutil"
)

// JwtAuthMiddleware 校验Bearer访问令牌，把用户名写入请求上下文
func JwtAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) != 2 || !strings.EqualFold(t[0], "Bearer") {
			controller.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "缺少访问令牌")
			c.Abort()
			return
		}

		authToken := t[1]
		authorized, err := tokenutil.IsAuthorized(authToken, secret)
		if err != nil || !authorized {
			controller.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "访问令牌无效或已过期")
			c.Abort()
			return
		}

		username, err := tokenutil.ExtractUsernameFromToken(authToken, secret)
		if err != nil {
			controller.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "访问令牌无效或已过期")
			c.Abort()
			return
		}

		c.Set("x-username", username)
		c.Next()
	}
}
