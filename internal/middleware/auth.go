package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/josephnc/cc-charts/internal/logger"
	"github.com/josephnc/cc-charts/internal/response"
	"github.com/josephnc/cc-charts/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, authService: authService}
}

// RequireEditor gates chart data behind an editor-or-above role. Anything
// less aborts with 401 before any handler runs.
func (am *AuthMiddleware) RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			am.forbid(c)
			return
		}
		claims, err := am.authService.ParseToken(tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			am.forbid(c)
			return
		}
		if !services.RoleAtLeast(claims.Role, services.RoleEditor) {
			am.log.Debug("Role below editor", "role", claims.Role)
			am.forbid(c)
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorEnvelope{
		Error: response.APIError{
			Message: "You are not authorized to view this chart.",
			Code:    "rest_forbidden",
		},
	})
}

func extractToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
