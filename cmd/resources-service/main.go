package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/eduportal/resources-service/docs"
	"github.com/eduportal/resources-service/internal/cache"
	"github.com/eduportal/resources-service/internal/config"
	"github.com/eduportal/resources-service/internal/events"
	"github.com/eduportal/resources-service/internal/http/handlers/announcements"
	"github.com/eduportal/resources-service/internal/http/handlers/courses"
	"github.com/eduportal/resources-service/internal/http/handlers/notifications"
	"github.com/eduportal/resources-service/internal/http/handlers/resources"
	"github.com/eduportal/resources-service/internal/http/handlers/users"
	"github.com/eduportal/resources-service/internal/http/middleware"
	"github.com/eduportal/resources-service/internal/services/media"
	"github.com/eduportal/resources-service/internal/storage/postgres"
)

// @title Educational Resources API
// @version 1.0
// @description Course and resource management for the department portal.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// load config
	cfg := config.MustLoad()

	// database setup
	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	slog.Info("Connected to Postgres database")

	// object storage setup
	blobs, err := media.NewService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize object storage:", err)
	}
	slog.Info("Connected to MinIO", slog.String("bucket", cfg.MinIO.BucketName))

	// redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	slog.Info("Connected to Redis")

	cacheSvc := cache.NewCacheService(storage, redisClient)
	rateLimits := middleware.NewRateLimitConfig(redisClient)
	publisher := events.NewEventPublisher(storage)
	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	// setup server
	router := http.NewServeMux()

	router.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Educational Resources API"))
	})
	router.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// accounts
	router.HandleFunc("POST /users/signup", users.SignUp(storage))
	router.HandleFunc("POST /users/login", users.Login(storage, cfg.JWTSecret))
	router.Handle("GET /me", auth(users.Profile(storage)))
	router.Handle("GET /users", auth(users.List(storage)))
	router.Handle("PATCH /users/{id}", auth(rateLimits.RateLimitedHandler("write",
		users.Update(storage))))
	router.Handle("DELETE /users/{id}", auth(rateLimits.RateLimitedHandler("write",
		users.Deactivate(storage))))

	// courses
	router.HandleFunc("GET /courses", courses.List(storage, cacheSvc))
	router.HandleFunc("GET /courses/{id}", courses.Get(storage))
	router.Handle("POST /courses/upload", auth(rateLimits.RateLimitedHandler("upload",
		courses.Upload(storage, blobs, cacheSvc, publisher))))
	router.Handle("PATCH /courses/{id}", auth(rateLimits.RateLimitedHandler("write",
		courses.Update(storage, cacheSvc))))
	router.Handle("DELETE /courses/{id}", auth(rateLimits.RateLimitedHandler("write",
		courses.Archive(storage, cacheSvc))))
	router.Handle("GET /me/courses", auth(courses.MyCourses(storage)))

	// resources
	router.HandleFunc("GET /courses/{id}/resources", resources.ListByCourse(storage))
	router.HandleFunc("GET /resources", resources.ListByType(storage))
	router.HandleFunc("GET /stats/resources", resources.Count(cacheSvc))
	router.HandleFunc("POST /resources/{id}/view", resources.View(storage, blobs))
	router.HandleFunc("POST /resources/{id}/download", resources.Download(storage, blobs))
	router.Handle("DELETE /resources/{id}", auth(rateLimits.RateLimitedHandler("write",
		resources.Delete(storage, cacheSvc))))
	router.Handle("GET /me/uploads", auth(resources.MyUploads(storage)))

	// announcements
	router.HandleFunc("GET /announcements", announcements.List(storage))
	router.HandleFunc("POST /announcements/{id}/view", announcements.View(storage))
	router.Handle("POST /announcements", auth(rateLimits.RateLimitedHandler("write",
		announcements.Create(storage, publisher))))
	router.Handle("PATCH /announcements/{id}/status", auth(rateLimits.RateLimitedHandler("write",
		announcements.UpdateStatus(storage))))
	router.Handle("PATCH /announcements/{id}/pin", auth(rateLimits.RateLimitedHandler("write",
		announcements.TogglePin(storage))))

	// notifications
	router.Handle("GET /me/notifications", auth(notifications.List(storage)))
	router.Handle("GET /me/notifications/unread", auth(notifications.UnreadCount(storage)))
	router.Handle("POST /me/notifications/read", auth(notifications.MarkAllRead(storage)))
	router.Handle("POST /me/notifications/{id}/read", auth(notifications.MarkRead(storage)))

	// debug
	router.HandleFunc("GET /debug/cache", cache.GetCacheStats(redisClient))

	server := http.Server{
		Addr:    cfg.HTTPServer.Address,
		Handler: router,
	}

	log.Println("server started on", cfg.HTTPServer.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %s", err)
		}
	}()

	<-done

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		slog.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
		return
	}

	redisClient.Close()
	slog.Info("Server stopped")
}
