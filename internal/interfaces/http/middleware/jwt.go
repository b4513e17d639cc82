package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/infrastructure/auth"
	"github.com/erp/selling/internal/infrastructure/logger"
	"github.com/erp/selling/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys and headers
const (
	JWTClaimsKey         = "jwt_claims"
	JWTTenantIDKey       = "jwt_tenant_id"
	AuthHeaderKey        = "Authorization"
	BearerPrefix         = "Bearer "
	IdempotencyKeyHeader = "Idempotency-Key"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// JWTAuth requires a valid bearer token carrying a tenant. The claims, the
// tenant id and a tenant-scoped logger context are attached to the request.
func JWTAuth(validator TokenValidator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing bearer token")
			return
		}

		claims, err := validator.Validate(strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix)))
		if err != nil {
			log.Debug("rejected token", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid token")
			return
		}
		tenantID, err := claims.Tenant()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Token carries no tenant")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTTenantIDKey, tenantID)
		ctx := logger.WithTenantID(c.Request.Context(), tenantID.String())
		ctx = logger.WithUser(ctx, claims.Actor().Display())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="selling"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetTenantID returns the tenant set by JWTAuth
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(JWTTenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetClaims returns the claims set by JWTAuth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetActor returns the acting user, or an anonymous actor without roles
func GetActor(c *gin.Context) shared.Actor {
	if claims, ok := GetClaims(c); ok {
		return claims.Actor()
	}
	return shared.Actor{}
}
