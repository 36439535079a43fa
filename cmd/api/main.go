package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bootcamp/internal/blob"
	"bootcamp/internal/bootcamp"
	"bootcamp/internal/config"
	"bootcamp/internal/handler"
	"bootcamp/internal/httpmiddleware"
	"bootcamp/internal/queue"
	"bootcamp/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx := context.Background()

	// Startup configuration failures are fatal; the process never starts
	// degraded.
	db, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		q = queue.NewRedisQueue(redisClient.Client, "bootcamp:notifications")
	} else {
		q = queue.NewInMemory(64)
	}

	storage, err := newBlobStorage(cfg)
	if err != nil {
		log.Fatalf("blob storage init failed: %v", err)
	}

	repo := bootcamp.NewRepository(db.DB)
	svc := bootcamp.NewService(repo)
	h := handler.New(svc, storage, q)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(httpmiddleware.CORS(cfg.AllowedOrigins))
	r.Use(httpmiddleware.Metrics())
	r.Use(securityHeaders())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		dbHealthy := db.Healthy(c.Request.Context())
		redisHealthy := redisClient.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	r.POST("/submit-info", h.SubmitInfo)
	r.POST("/submit-memberinfo", h.SubmitMemberInfo)
	r.POST("/submit-test", h.SubmitTest)
	r.POST("/submit-feedback", h.SubmitFeedback)
	r.POST("/upload-assessment", h.UploadAssessment)

	api := r.Group("/api")
	api.GET("/questions", h.Questions)
	api.POST("/questions", h.AddQuestions)
	api.GET("/notifications", h.Notifications)
	api.POST("/uploadContent", h.UploadContent)
	api.GET("/assessments", h.Assessments)
	api.GET("/assessments/:id", h.GetAssessment)

	// The disk-backed uploads directory is also served directly for
	// anonymous read.
	if disk, ok := storage.(*blob.Disk); ok {
		r.Static("/uploads", disk.Dir())
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}

func newBlobStorage(cfg config.App) (blob.Storage, error) {
	if cfg.BlobBackend == "mongo" {
		return blob.NewEmbedded(), nil
	}
	return blob.NewDisk(cfg.UploadDir)
}

// Security headers middleware.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
