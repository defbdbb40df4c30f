package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-todo-api/pkg/response"
)

const requesterKey = "requester"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Parse(token string) (*helpers.Claims, error)
}

// BearerAuth guards a route group. It accepts only "Authorization: Bearer
// <token>" and stores the decoded entity.Requester on the request context.
// No database lookup happens here.
func BearerAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization header", nil)
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Error(c, http.StatusUnauthorized, "invalid authorization header format", nil)
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			if errors.Is(err, helpers.ErrExpiredToken) {
				response.Error(c, http.StatusUnauthorized, "token expired", nil)
				return
			}
			response.Error(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		c.Set(requesterKey, entity.Requester{UserID: claims.UserID(), Email: claims.Email})
		c.Next()
	}
}

// RequesterFrom returns the identity set by BearerAuth.
func RequesterFrom(c *gin.Context) (entity.Requester, bool) {
	v, ok := c.Get(requesterKey)
	if !ok {
		return entity.Requester{}, false
	}
	who, ok := v.(entity.Requester)
	return who, ok
}
