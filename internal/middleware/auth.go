package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/handler"
	"github.com/globalhospital/portal-api/internal/model"
)

const contextProfileKey = "profile"

// AuthService is the slice of the auth service the middleware needs.
type AuthService interface {
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}

type AuthMiddleware struct {
	authService AuthService
}

func NewAuthMiddleware(authService AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the JWT token and sets the caller's profile in
// the request context. Every downstream handler reads identity from
// this one explicit object.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		profile, err := m.authService.GetProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(contextProfileKey, profile)
		c.Next()
	}
}

// RequireRole gates a route on the profile's role string.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentProfile(c)
		if profile == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
			c.Abort()
			return
		}
		if profile.Role != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentProfile returns the authenticated profile, or nil outside an
// authenticated route.
func CurrentProfile(c *gin.Context) *model.Profile {
	v, ok := c.Get(contextProfileKey)
	if !ok {
		return nil
	}
	profile, ok := v.(*model.Profile)
	if !ok {
		return nil
	}
	return profile
}

// SetProfileForTest injects a profile into the context the way
// Authenticate would. Test helper only.
func SetProfileForTest(c *gin.Context, profile *model.Profile) {
	c.Set(contextProfileKey, profile)
}
