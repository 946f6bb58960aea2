package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/DigiCred-Holdings/credential-analysis/internal/response"
)

// ContextKeyServiceClaims is the Gin context key for validated service claims.
const ContextKeyServiceClaims = "service_claims"

// ServiceClaims identifies the calling service on authenticated routes.
type ServiceClaims struct {
	jwt.RegisteredClaims
	Service string `json:"svc,omitempty"`
}

// RequireServiceJWT validates an HS256 service-to-service token from the
// Authorization header. Built only when a shared secret is configured; with
// no secret the router leaves the middleware off entirely.
func RequireServiceJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		claims := &ServiceClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			code := response.ErrTokenInvalid
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = response.ErrTokenExpired
			}
			response.AbortFail(c, http.StatusUnauthorized, code)
			return
		}
		if !token.Valid {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyServiceClaims, claims)
		c.Next()
	}
}
