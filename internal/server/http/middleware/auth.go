package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/campusfood/internal/domain/model"
	pkgAuth "github.com/polkiloo/campusfood/internal/pkg/auth"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated account.
	PrincipalContextKey = "principal"
	authCookieName      = "campusfood_token"
)

// TokenParser resolves a bearer token into the account it was issued to.
type TokenParser interface {
	ParseToken(token string) (model.Principal, error)
}

// AuthRequired ensures the caller is authenticated with the given role.
func AuthRequired(parser TokenParser, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, token failed"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Server error"})
			return
		}
		if principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Access denied. " + capitalize(string(role)) + "s only."})
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated account stored by AuthRequired.
func CurrentPrincipal(c *gin.Context) (model.Principal, bool) {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := val.(model.Principal)
	return p, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
