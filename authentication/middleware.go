package authentication

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LokeshAnde180/docspot/models"
)

// ClaimsKey is the gin context key the authenticated claims live under.
const ClaimsKey = "authClaims"

// CurrentClaims returns the claims stored by the Authenticate middleware.
func CurrentClaims(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// Authenticate verifies the bearer token and stores the decoded claims on the
// context. Authentication failure short-circuits before any role gate runs.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireCustomer admits customers and admins.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}
		switch claims.Role {
		case models.RoleCustomer, models.RoleAdmin:
			c.Next()
		case models.RoleDoctor:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied, not a customer"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied, not a customer"})
		}
	}
}

// RequireDoctor admits exactly the doctor role.
func RequireDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}
		switch claims.Role {
		case models.RoleDoctor:
			c.Next()
		case models.RoleCustomer, models.RoleAdmin:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied, not a doctor"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied, not a doctor"})
		}
	}
}

// RequireAdmin admits exactly the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}
		switch claims.Role {
		case models.RoleAdmin:
			c.Next()
		case models.RoleCustomer, models.RoleDoctor:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied, not an admin"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied, not an admin"})
		}
	}
}
