package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hotel-reservation-backend/utils"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is what the external identity provider puts in its tokens.
// This service only consumes them; issuance lives elsewhere.
type IdentityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Identity struct {
	CustomerID uint
	Role       string
}

func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}

const identityKey = "identity"

func parseToken(tokenStr, secret string) (*IdentityClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*IdentityClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireIdentity validates the bearer token and stores the caller's identity
// in the request context.
func RequireIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.JSONError(c, http.StatusUnauthorized, "missing or malformed bearer token")
			c.Abort()
			return
		}

		claims, err := parseToken(parts[1], secret)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		customerID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil || customerID == 0 {
			utils.JSONError(c, http.StatusUnauthorized, "invalid subject claim")
			c.Abort()
			return
		}
		c.Set(identityKey, Identity{CustomerID: uint(customerID), Role: claims.Role})
		c.Next()
	}
}

// RequireAdmin must run after RequireIdentity.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok || !id.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
