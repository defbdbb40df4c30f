package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo-api/internal/container"
	handlers "github.com/oksasatya/go-ddd-todo-api/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo-api/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-todo-api/internal/router/modules"
)

// NewEngine builds the gin engine with global middleware and every module
// registered.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}

	reg := NewRegistry(r, cfg.APIPrefix)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// InitModules wires handlers from the container into route modules.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	var allow middleware.AllowFunc
	if cfg.RateLimitSkipPrivate {
		allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.Ping, c.Logger)))
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(c.AuthService, c.Logger),
		c.Redis, cfg.AuthRateLimit, allow,
	))
	r.Add(modules.NewTodoModule(
		handlers.NewTodoHandler(c.TodoService, c.Logger, cfg.AttachmentMaxBytes),
		c.JWT, c.Redis, cfg.APIRateLimit, allow,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
