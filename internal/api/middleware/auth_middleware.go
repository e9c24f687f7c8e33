package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
	UserIDKey               = "userID"
	StaffRecordKey          = "staffRecord"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (int, error)
}

type RoleResolver interface {
	ResolveDriver(ctx context.Context, userID int) (*domain.StaffRecord, error)
	ResolveManager(ctx context.Context, userID int) (*domain.StaffRecord, error)
	ResolveSuperAdmin(ctx context.Context, userID int) error
}

type AuthMiddleware struct {
	tokens   TokenValidator
	resolver RoleResolver
}

func NewAuthMiddleware(tokens TokenValidator, resolver RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver}
}

// Authenticate verifies the bearer token and stores the user id.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			response.Fail(c, http.StatusUnauthorized, "Access token required")
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			response.Fail(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		userID, err := m.tokens.ValidateToken(fields[1])
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// RequireDriver must run after Authenticate. The resolved driver record is stored
// under StaffRecordKey.
func (m *AuthMiddleware) RequireDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := m.resolver.ResolveDriver(c.Request.Context(), UserID(c))
		if err != nil {
			response.Error(c, "RequireDriver", err)
			return
		}
		c.Set(StaffRecordKey, rec)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := m.resolver.ResolveManager(c.Request.Context(), UserID(c))
		if err != nil {
			response.Error(c, "RequireManager", err)
			return
		}
		c.Set(StaffRecordKey, rec)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.resolver.ResolveSuperAdmin(c.Request.Context(), UserID(c)); err != nil {
			response.Error(c, "RequireSuperAdmin", err)
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0 outside Authenticate.
func UserID(c *gin.Context) int {
	return c.GetInt(UserIDKey)
}

// StaffRecord returns the record a Require* middleware resolved.
func StaffRecord(c *gin.Context) *domain.StaffRecord {
	v, ok := c.Get(StaffRecordKey)
	if !ok {
		return nil
	}
	rec, _ := v.(*domain.StaffRecord)
	return rec
}
