package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-todo-api/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo-api/internal/interface/middleware"
)

// TodoModule serves the bearer-protected todo routes.
type TodoModule struct {
	Handler *handlers.TodoHandler
	Tokens  middleware.TokenVerifier
	RDB     *redis.Client
	Limit   int
	Allow   middleware.AllowFunc
}

func NewTodoModule(h *handlers.TodoHandler, tokens middleware.TokenVerifier, rdb *redis.Client, limit int, allow middleware.AllowFunc) *TodoModule {
	return &TodoModule{Handler: h, Tokens: tokens, RDB: rdb, Limit: limit, Allow: allow}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	todos.Use(
		middleware.BearerAuth(m.Tokens),
		middleware.RateLimit(m.RDB, m.Limit, time.Minute, middleware.KeyByUserID(), m.Allow),
	)
	{
		todos.POST("", m.Handler.Create)
		todos.GET("", m.Handler.List)
		todos.GET("/search", m.Handler.Search)
		todos.GET("/:id", m.Handler.Get)
		todos.PUT("/:id", m.Handler.Update)
		todos.DELETE("/:id", m.Handler.Delete)
		todos.PUT("/:id/attachment", m.Handler.Attach)
	}
}
