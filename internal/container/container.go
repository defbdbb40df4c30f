package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo-api/config"
	"github.com/oksasatya/go-ddd-todo-api/internal/application"
	repo "github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
	gcsinfra "github.com/oksasatya/go-ddd-todo-api/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/go-ddd-todo-api/internal/infrastructure/postgres"
	rabbitinfra "github.com/oksasatya/go-ddd-todo-api/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/go-ddd-todo-api/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-todo-api/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
)

// Container holds everything built once at startup. Optional integrations
// (Redis, Elasticsearch, GCS, RabbitMQ) stay nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool *pgxpool.Pool
	SQLite *sql.DB

	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher

	Users repo.UserRepository
	Todos repo.TodoRepository

	AuthService *application.AuthService
	TodoService *application.TodoService
}

// New connects the configured stores and integrations and assembles the
// services. The caller owns the result and must call Close.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		Hasher: helpers.NewPasswordHasher(cfg.BcryptCost),
	}
	if err := c.openStores(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.openIntegrations(ctx); err != nil {
		c.Close()
		return nil, err
	}

	var notifier application.Notifier
	if c.RabbitPub != nil {
		notifier = rabbitinfra.NewNotifier(c.RabbitPub, cfg.AppName)
	}
	var index application.TodoIndex
	if c.ES != nil {
		index = search.NewTodoIndex(c.ES, cfg.ESTodosIndex)
	}
	var objects application.ObjectStore
	if c.GCS != nil {
		objects = gcsinfra.NewObjectStore(c.GCS, cfg.GCSBucket)
	}

	c.AuthService = application.NewAuthService(c.Users, c.Hasher, c.JWT, notifier, logger)
	c.TodoService = application.NewTodoService(c.Todos, c.Users, index, objects, logger)
	return c, nil
}

func (c *Container) openStores(ctx context.Context) error {
	switch c.Config.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(c.Config.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		c.SQLite = db
		c.Users = sqlite.NewUserRepository(db)
		c.Todos = sqlite.NewTodoRepository(db)
	default:
		dsn := c.Config.PostgresDSN()
		if err := pginfra.Migrate(dsn, c.Config.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, dsn, c.Config.DBMaxConns, c.Config.DBMinConns, c.Config.DBMaxConnLife)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		c.Users = pginfra.NewUserRepository(pool)
		c.Todos = pginfra.NewTodoRepository(pool)
	}
	return nil
}

func (c *Container) openIntegrations(ctx context.Context) error {
	cfg := c.Config

	// rate limiting fails open, so an unreachable Redis only warrants a warning
	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := helpers.PingRedis(ctx, c.Redis); err != nil {
		c.Logger.WithError(err).Warn("redis unreachable; rate limits will fail open")
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return fmt.Errorf("init elasticsearch: %w", err)
	}
	if es != nil {
		c.ES = es
		if err := search.NewTodoIndex(es, cfg.ESTodosIndex).EnsureIndex(ctx); err != nil {
			c.Logger.WithError(err).Warn("elasticsearch index not ready")
		}
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return fmt.Errorf("init gcs: %w", err)
		}
		c.GCS = gcs
	}

	if cfg.RabbitMQURL != "" && cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			c.Logger.WithError(err).Warn("rabbitmq unreachable; welcome emails disabled")
		} else {
			c.RabbitPub = pub
		}
	}
	return nil
}

// Ping checks the active database.
func (c *Container) Ping(ctx context.Context) error {
	if c.PGPool != nil {
		return c.PGPool.Ping(ctx)
	}
	if c.SQLite != nil {
		return c.SQLite.PingContext(ctx)
	}
	return errors.New("no database configured")
}

// Close releases every connection the container opened.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
	if c.SQLite != nil {
		_ = c.SQLite.Close()
	}
}
