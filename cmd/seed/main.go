package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-todo-api/config"
	"github.com/oksasatya/go-ddd-todo-api/internal/application"
	"github.com/oksasatya/go-ddd-todo-api/internal/container"
	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
)

var demoTodos = []string{"buy milk", "walk the dog", "write the weekly report"}

func main() {
	email := flag.String("email", "demo@example.com", "demo account email")
	password := flag.String("password", "password123", "demo account password")
	reset := flag.Bool("reset", false, "delete the demo account (and its todos) before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// seeding should not send welcome emails
	cfg.RabbitMQURL = ""
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer c.Close()

	if *reset {
		u, err := c.Users.GetByEmail(ctx, *email)
		switch {
		case err == nil:
			if err := c.Users.Delete(ctx, u.ID); err != nil {
				log.Fatalf("reset: %v", err)
			}
			logger.WithField("user_id", u.ID).Info("removed demo user and their todos")
		case !errors.Is(err, repository.ErrNotFound):
			log.Fatalf("reset: %v", err)
		}
	}

	u, err := c.AuthService.Signup(ctx, *email, *password)
	if errors.Is(err, application.ErrEmailTaken) {
		logger.WithField("email", *email).Info("demo user already exists; use -reset to recreate")
		return
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	who := entity.Requester{UserID: u.ID, Email: u.Email}
	for _, title := range demoTodos {
		if _, err := c.TodoService.Create(ctx, application.CreateTodoInput{Title: title}, who); err != nil {
			log.Fatalf("seed todo %q: %v", title, err)
		}
	}
	logger.WithField("user_id", u.ID).WithField("email", u.Email).Infof("seeded demo user with %d todos", len(demoTodos))
}
