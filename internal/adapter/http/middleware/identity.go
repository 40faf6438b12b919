package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todohub/pkg/apierrors"
)

const userIDKey = "userID"

// IdentityMiddleware requires the caller identity header set by the upstream
// auth gateway. Session issuance and verification happen there, not here.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			lang := GetLang(c)
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingUserIdentity, lang),
			)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(userIDKey); exists {
		if s, ok := userID.(string); ok {
			return s
		}
	}
	return ""
}
