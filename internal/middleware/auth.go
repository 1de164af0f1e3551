package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/requestdata"
	"github.com/careersynapse/backend/internal/services"
)

// NewAuthMiddleware validates the bearer token and puts the caller's
// identity into the request context. A missing token and an invalid or
// expired one are both 401.
func NewAuthMiddleware(authService services.AuthService, log *logger.Logger) gin.HandlerFunc {
	mwLog := log.With("middleware", "AuthMiddleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		userID, err := authService.ParseSessionToken(tokenString)
		if err != nil {
			mwLog.Debug("Rejected session token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			return
		}

		rd := &requestdata.RequestData{TokenString: tokenString, UserID: userID}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}
