package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "lead-crm-service/internal/domain/user"
	"lead-crm-service/internal/usecase/auth"
	"lead-crm-service/pkg/logger"
	"lead-crm-service/pkg/token"
)

// identityKey is the gin context key the authenticated user is stored under.
const identityKey = "identity"

// Auth returns a Gin middleware that verifies the bearer token and attaches
// the authenticated identity to the request context. The token's user ID is
// resolved against the user repository: a token referencing a deleted user is
// rejected the same way as an invalid one.
func Auth(tokens *token.Manager, users auth.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.Verify(raw)
		if err != nil {
			log.Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		usr, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			log.Error("failed to resolve token identity", zap.String("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
			return
		}
		if usr == nil {
			// Token is cryptographically valid but its user is gone.
			log.Warn("token references missing user", zap.String("user_id", userID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		SetIdentity(c, usr)

		// Thread the user ID into the request context so downstream logs carry it.
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, usr.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SetIdentity attaches the authenticated user to the gin context.
func SetIdentity(c *gin.Context, usr *domain.User) {
	c.Set(identityKey, usr)
}

// Identity returns the authenticated user attached by Auth.
// Handlers behind the middleware can rely on ok being true.
func Identity(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	usr, ok := v.(*domain.User)
	return usr, ok
}
