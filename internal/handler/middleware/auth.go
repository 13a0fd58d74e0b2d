package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lastbite/internal/usecase/shared"
)

const (
	apiKeyHeader       = "X-API-Key"
	restaurantIDHeader = "X-Restaurant-ID"
	restaurantIDQuery  = "restaurant_id"

	ctxRestaurantIDKey = "restaurant_id"
)

// AuthMiddleware authenticates merchants: the caller names a restaurant and
// proves ownership with its API key, compared against the stored bcrypt hash.
type AuthMiddleware struct {
	uow shared.UnitOfWork
}

func NewAuthMiddleware(uow shared.UnitOfWork) *AuthMiddleware {
	return &AuthMiddleware{uow: uow}
}

func (m *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			c.Abort()
			return
		}

		rawID := c.GetHeader(restaurantIDHeader)
		if rawID == "" {
			rawID = c.Query(restaurantIDQuery)
		}
		restaurantID, err := uuid.Parse(rawID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Restaurant ID required"})
			c.Abort()
			return
		}

		rest, err := m.uow.CommandReads().RestaurantByID(c.Request.Context(), restaurantID)
		if err != nil {
			slog.Warn("restaurant lookup failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid restaurant or API key"})
			c.Abort()
			return
		}
		if !rest.VerifyKey(key) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid restaurant or API key"})
			c.Abort()
			return
		}

		c.Set(ctxRestaurantIDKey, restaurantID)
		c.Next()
	}
}

func GetRestaurantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxRestaurantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
