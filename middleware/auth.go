package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/OpinaApp/opina-backend/config"
	"github.com/OpinaApp/opina-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Supabase-issued Bearer token on admin
// routes. The admin UI authenticates against Supabase directly; this tier
// only verifies the resulting HS256 JWT against the project's JWT secret.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization required",
			})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := validateJWT(token, cfg.ExternalServices.SupabaseJWTSecret)
		if err != nil {
			log.Warnw("Invalid JWT token",
				"error", err,
				"request_path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// validateJWT verifies the token signature and expiry and returns the
// subject claim.
func validateJWT(tokenString, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("token parse failed: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}

	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil {
		return "", fmt.Errorf("missing expiry claim")
	} else if exp.Before(time.Now()) {
		return "", fmt.Errorf("token expired")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("missing subject claim")
	}
	return sub, nil
}
