package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"prd-builder-api/internal/interfaces/http/dto"
	apperrors "prd-builder-api/pkg/errors"
	"prd-builder-api/pkg/logger"
	"prd-builder-api/pkg/utils"
)

// UserIDKey is where auth puts the caller's id in the gin context.
const UserIDKey = "user_id"

// AuthConfig configures bearer-token verification.
type AuthConfig struct {
	Secret    string
	Issuer    string
	SkipPaths []string
}

// Auth verifies bearer JWTs and injects the user id into the request.
//
// An empty Secret disables verification completely: every request goes
// through with no user attached and every project is treated as the
// caller's own. That is the local-development fallback; main logs a
// loud warning when it is active.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Secret == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	skipMap := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipMap[path] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipMap[path] {
			c.Next()
			return
		}
		for prefix := range skipMap {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			dto.AbortError(c, apperrors.ErrTokenMissing)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			dto.AbortError(c, apperrors.ErrTokenInvalid)
			return
		}

		claims, err := jwtManager.ParseToken(parts[1])
		if err != nil {
			if err == utils.ErrExpiredToken {
				dto.AbortError(c, apperrors.ErrTokenExpired)
				return
			}
			dto.AbortError(c, apperrors.ErrTokenInvalid)
			return
		}

		if claims.Type != "access" {
			dto.AbortError(c, apperrors.ErrTokenInvalid)
			return
		}

		c.Set(UserIDKey, claims.UserID)

		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// DefaultSkipPaths never require a token.
var DefaultSkipPaths = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
}
