package main

import (
	"inkpress/pkg/cache"
	"inkpress/pkg/config"
	"inkpress/pkg/database"
	"inkpress/pkg/logger"
	"inkpress/pkg/queue"
	"inkpress/pkg/s3"
	app "inkpress/services/blog/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Inkpress Blog API
// @version         1.0
// @description     Blog facade: auth, posts, comments and user profiles

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	defer log.Sync()

	var infra app.Infra

	if cfg.Backend == config.BackendPostgres {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			panic(err)
		}
		infra.DB = db
	}

	// Rate limiting is skipped without Redis
	if redisClient, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without rate limiting)", err)
	} else {
		infra.Redis = redisClient
	}

	if cfg.AWSAccessKeyID != "" {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Warn("Failed to create S3 client: %v (avatar upload disabled)", err)
		} else {
			infra.Storage = s3Client
		}
	}

	if cfg.RabbitMQHost != "" {
		publisher, err := queue.NewPublisher(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		} else {
			infra.Publisher = publisher
		}
	}

	app.Run(cfg, log, infra)
}
