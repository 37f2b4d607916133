package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	// ClaimsKey stores the caller's token claims in the gin context
	ClaimsKey = "claims"
	// UserKey stores the caller's display identity in the gin context
	UserKey = "user"
)

// BearerClaims reads the claims of a bearer token so the caller can be named
// in logs. The signature is not verified and requests without a usable token
// are let through: API Gateway owns authentication.
func BearerClaims(logger logrus.FieldLogger) gin.HandlerFunc {
	parser := jwt.NewParser()

	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"error":      err.Error(),
			}).Debug("Ignoring unreadable bearer token")
			c.Next()
			return
		}

		c.Set(ClaimsKey, map[string]interface{}(claims))
		if user := identityFromClaims(claims); user != "" {
			c.Set(UserKey, user)
		}
		c.Next()
	}
}

// bearerToken extracts the token from a "Bearer <token>" header
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func identityFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"email", "cognito:username"} {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
