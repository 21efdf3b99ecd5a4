package middleware

import (
	"net/http"
	"strings"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/auth"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the authentication middleware.
const (
	UserIDKey = "auth_user_id"
	RoleKey   = "auth_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Authenticate validates the Bearer token and attaches the verified
// (userID, role) pair to the request context. Handlers downstream trust
// this pair and never re-verify credentials.
func Authenticate(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid token subject")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. Must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(domain.CodeForbidden, "Not authorized for this action"))
	}
}

// UserID returns the authenticated user's ID from the request context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(domain.CodeUnauthorized, message))
}
