package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-todo-api/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo-api/internal/interface/middleware"
)

// AuthModule serves the public signup and login routes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	RDB     *redis.Client
	Limit   int
	Allow   middleware.AllowFunc
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, limit int, allow middleware.AllowFunc) *AuthModule {
	return &AuthModule{Handler: h, RDB: rdb, Limit: limit, Allow: allow}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.RDB, m.Limit, time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	rg.POST("/auth/signup", limiter, m.Handler.Signup)
	rg.POST("/auth/login", limiter, m.Handler.Login)
}
