package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"glow-server/internal/domain/user"
	authvalidator "glow-server/internal/infrastructure/auth"
	"glow-server/internal/infrastructure/metrics"
	"glow-server/internal/utils/platformerrors"
)

const currentUserContextKey = "current_user"

// AuthMiddleware validates the bearer session token and resolves it to an
// application user, creating the user record on first sight.
func AuthMiddleware(validator *authvalidator.TokenValidator, users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := bearerToken(c)
		if rawToken == "" {
			metrics.RecordAuthRequest("missing_token")
			platformerrors.WriteUnauthorized(c, "authentication required")
			c.Abort()
			return
		}

		principal, err := validator.Validate(rawToken)
		if err != nil {
			logger.Warn().Err(err).
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("token validation failed")
			metrics.RecordAuthRequest("invalid_token")
			platformerrors.WriteUnauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		usr, err := users.EnsureUser(c.Request.Context(), user.Identity{
			Issuer:  principal.Issuer,
			Subject: principal.Subject,
			Email:   optionalString(principal.Email),
			Name:    optionalString(principal.Name),
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to resolve user from token")
			metrics.RecordAuthRequest("resolve_failed")
			platformerrors.WriteError(c, err, logger)
			c.Abort()
			return
		}

		metrics.RecordAuthRequest("ok")
		c.Set(currentUserContextKey, usr)
		c.Next()
	}
}

// CurrentUser returns the authenticated user resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	val, ok := c.Get(currentUserContextKey)
	if !ok {
		return nil, false
	}
	usr, ok := val.(*user.User)
	return usr, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
