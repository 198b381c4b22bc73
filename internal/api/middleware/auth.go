package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stayflow/stayflow-backend/pkg/sso"
)

// AuthRequired accepts locally issued HS256 tokens (subject = tenant id)
// and, when an SSO realm is configured, RS256 tokens from that realm
// carrying an "organization" claim.
func AuthRequired(jwtSecret string, ssoClient *sso.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})

		if err == nil && token.Valid {
			c.Set("tenant_id", claims.Subject)
			c.Next()
			return
		}

		if ssoClient != nil && ssoClient.Enabled() {
			ssoClaims, ssoErr := ssoClient.ValidateToken(tokenString)
			if ssoErr == nil {
				organization, ok := ssoClaims["organization"].(string)
				if !ok || organization == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Organization not found in token"})
					c.Abort()
					return
				}
				c.Set("tenant_id", organization)
				c.Set("claims", ssoClaims)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		c.Abort()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
