package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/infrastructure/auth"
	"github.com/investkaro/backend/internal/interfaces/http/dto"
)

// Context keys
const (
	ClaimsKey     = "auth_claims"
	ViewerKey     = "auth_viewer"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; when set, revoked tokens are rejected
	Blacklist auth.TokenBlacklist
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth validates the bearer token and resolves the authenticated
// Viewer into the request context. Role and manager ride in the token,
// so no profile lookup happens per request.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			message := "Invalid token"
			switch err {
			case auth.ErrExpiredToken:
				code = dto.ErrCodeTokenExpired
				message = "Token has expired"
			case auth.ErrTokenNotYetValid:
				message = "Token is not yet valid"
			}
			if cfg.Logger != nil {
				cfg.Logger.Warn("Token validation failed",
					zap.String("path", path),
					zap.Error(err))
			}
			abortUnauthorized(c, code, message)
			return
		}

		if cfg.Blacklist != nil {
			ctx := c.Request.Context()
			if claims.ID != "" {
				blacklisted, err := cfg.Blacklist.IsBlacklisted(ctx, claims.ID)
				if err != nil {
					// Fail open: an unreachable blacklist must not take
					// the whole API down with it.
					if cfg.Logger != nil {
						cfg.Logger.Error("Token blacklist check failed", zap.Error(err))
					}
				} else if blacklisted {
					abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
					return
				}
			}
			invalidated, err := cfg.Blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Error("User token invalidation check failed", zap.Error(err))
				}
			} else if invalidated {
				abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Session has been invalidated")
				return
			}
		}

		viewer, err := viewerFromClaims(claims)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token claims")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ViewerKey, viewer)
		c.Next()
	}
}

func viewerFromClaims(claims *auth.Claims) (identity.Viewer, error) {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return identity.Viewer{}, err
	}
	managerID, err := claims.GetManagerUUID()
	if err != nil {
		return identity.Viewer{}, err
	}
	return identity.Viewer{
		ID:        userID,
		Role:      identity.Role(claims.Role),
		ManagerID: managerID,
	}, nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetViewer retrieves the authenticated viewer from the context.
// The second return is false on unauthenticated (skip-path) requests.
func GetViewer(c *gin.Context) (identity.Viewer, bool) {
	if v, exists := c.Get(ViewerKey); exists {
		if viewer, ok := v.(identity.Viewer); ok {
			return viewer, true
		}
	}
	return identity.Viewer{}, false
}

// GetClaims retrieves the raw token claims from the context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// RequireAdmin rejects requests whose viewer does not hold the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok || !viewer.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// RequireManager rejects requests from plain users; admins pass too
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok || (!viewer.IsAdmin() && !viewer.IsManager()) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Manager access required"))
			return
		}
		c.Next()
	}
}
