package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/auth"
	"github.com/yukikurage/document-management-api/internal/constants"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
)

// TokenVerifier resolves a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireAuth checks if the request carries a valid bearer token
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		token, err := auth.ExtractToken(header)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid authorization header")
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid bearer token is present and
// lets every request through.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := auth.ExtractToken(c.GetHeader("Authorization")); err == nil {
			if identity, err := verifier.Verify(token); err == nil {
				c.Set(constants.ContextKeyIdentity, identity)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}
		if !identity.HasRole(role) {
			apierrors.Forbidden(c, "Insufficient role")
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller from context
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	if !ok || identity.ID == 0 {
		return auth.Identity{}, false
	}
	return identity, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		return 0, false
	}
	return identity.ID, true
}
