package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/pkg/baas"
	"inkpress/pkg/config"
	"inkpress/pkg/database"
	"inkpress/pkg/jwt"
	"inkpress/pkg/logger"
	"inkpress/pkg/middleware"
	"inkpress/pkg/queue"
	"inkpress/pkg/s3"
	blogHTTP "inkpress/services/blog/internal/controller/http"
	"inkpress/services/blog/internal/repo"
	"inkpress/services/blog/internal/repo/persistent"
	"inkpress/services/blog/internal/repo/remote"
	"inkpress/services/blog/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "inkpress/services/blog/docs" // Swagger docs
)

// Infra holds the connections opened by main. Every field is optional
// except DB for the postgres backend.
type Infra struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Storage   *s3.Client
	Publisher *queue.Publisher
}

// NewRepositories picks the backend named by cfg.Backend.
func NewRepositories(cfg *config.Config, log *logger.Logger, db *gorm.DB) (*repo.Repositories, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("backend %q needs a database connection", cfg.Backend)
		}
		return persistent.NewRepositories(db, jwt.NewService(cfg.BaaSJWTSecret)), nil
	default:
		client, err := baas.New(cfg.BaaSURL, cfg.BaaSAnonKey,
			baas.WithTimeout(cfg.BaaSTimeout),
			baas.WithLogger(log.Named("baas")),
			// One client serves every request; sessions travel in the request context.
			baas.WithoutSessionPersistence(),
		)
		if err != nil {
			return nil, err
		}
		return remote.NewRepositories(client), nil
	}
}

func NewUseCases(repos *repo.Repositories, infra Infra, log *logger.Logger) *usecase.UseCases {
	var publisher usecase.EventPublisher
	if infra.Publisher != nil {
		publisher = infra.Publisher
	}
	var storage usecase.ObjectStorage
	if infra.Storage != nil {
		storage = infra.Storage
	}
	return usecase.New(repos, publisher, storage, log)
}

func NewRouter(cfg *config.Config, uc *usecase.UseCases, redisClient *redis.Client, log *logger.Logger) *gin.Engine {
	var jwtService *jwt.Service
	if cfg.BaaSJWTSecret != "" {
		jwtService = jwt.NewService(cfg.BaaSJWTSecret)
	}

	authHandler := blogHTTP.NewAuthHandler(uc.Auth, log)
	postHandler := blogHTTP.NewPostHandler(uc.Posts, log)
	commentHandler := blogHTTP.NewCommentHandler(uc.Comments, log)
	userHandler := blogHTTP.NewUserHandler(uc.Users, uc.Auth, log)

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": cfg.Backend})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthMiddleware(jwtService)
	rateLimit := middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/signin", authHandler.SignIn)
		api.POST("/auth/signout", requireAuth, authHandler.SignOut)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.POST("/posts", requireAuth, rateLimit, postHandler.CreatePost)
		api.PUT("/posts/:id", requireAuth, postHandler.UpdatePost)
		api.DELETE("/posts/:id", requireAuth, postHandler.DeletePost)

		api.GET("/posts/:id/comments", commentHandler.ListComments)
		api.POST("/posts/:id/comments", requireAuth, rateLimit, commentHandler.CreateComment)
		api.DELETE("/comments/:id", requireAuth, commentHandler.DeleteComment)

		api.GET("/users/:id", userHandler.GetProfile)
		api.GET("/users/:id/posts", postHandler.ListAuthorPosts)
		api.PUT("/users/:id", requireAuth, userHandler.UpdateProfile)
		api.POST("/users/:id/avatar", requireAuth, userHandler.UploadAvatar)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, infra Infra) {
	repos, err := NewRepositories(cfg, log, infra.DB)
	if err != nil {
		log.Error("Failed to set up %s backend: %v", cfg.Backend, err)
		panic(err)
	}

	uc := NewUseCases(repos, infra, log)
	r := NewRouter(cfg, uc, infra.Redis, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Blog service starting on port %s (backend=%s)", cfg.ServerPort, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if infra.DB != nil {
		if err := database.Close(infra.DB); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if infra.Redis != nil {
		if err := infra.Redis.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if infra.Publisher != nil {
		infra.Publisher.Close()
	}

	log.Info("Blog service exited")
}
