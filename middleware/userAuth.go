package middleware

import (
	"net/http"
	"strings"

	userRepo "github.com/renjoshini/hereforyou/database/repository/user"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: msg})
}

// JWTAuthUserMiddleware verifies the bearer token, checks its hash against
// the one stored for the user and sets ContextUserID. authCache may be nil,
// in which case every request is checked against the database.
func JWTAuthUserMiddleware(users userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Insufficient authorization")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			unauthorized(c, "Insufficient authorization")
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			unauthorized(c, "Invalid token")
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil && cachedHash == computedHash:
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(ContextUserID, userID)
				c.Next()
				return
			case err == nil:
				unauthorized(c, "Token mismatch")
				return
			case err != redis.Nil:
				logger.Warn("Auth cache lookup failed, falling back to database", zap.Error(err))
			}
		}

		usr, err := users.GetByIDWithProjection(userID, bson.M{"id": 1, "tokenHash": 1})
		if err != nil || usr == nil {
			unauthorized(c, "Authentication error")
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			unauthorized(c, "Token mismatch")
			return
		}

		if authCache != nil {
			if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
				logger.Warn("Auth cache write failed", zap.Error(err))
			}
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
