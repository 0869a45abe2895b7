package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"citycare/internal/ai"
	"citycare/internal/analytics"
	"citycare/internal/assignment"
	"citycare/internal/auth"
	"citycare/internal/complaint"
	"citycare/internal/media"
	"citycare/internal/resource"
	"citycare/pkg/database"
	"citycare/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using environment variables")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	if err := database.Seed(db); err != nil {
		log.WithError(err).Fatal("Failed to seed default data")
	}
	log.Info("Database ready, migrations and seed complete")

	rdb := connectRedis(log)

	s3Client, err := media.NewS3ClientFromEnv(context.Background())
	if err != nil {
		log.WithError(err).Warn("S3 unavailable, falling back to local uploads")
		s3Client = nil
	}

	// Services
	authService := auth.NewService(db)
	classifier := ai.NewClassifier(log)
	complaintService := complaint.NewService(db, classifier)
	resourceService := resource.NewService(db)
	assignmentService := assignment.NewService(db, complaintService.Recorder(), log)
	analyticsService := analytics.NewService(db, rdb)
	aiService := ai.NewService(db)
	mediaService := media.NewService(s3Client, log)

	// Handlers
	authHandler := auth.NewHandler(authService)
	complaintHandler := complaint.NewHandler(complaintService, authService)
	resourceHandler := resource.NewHandler(resourceService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	aiHandler := ai.NewHandler(aiService)
	mediaHandler := media.NewHandler(mediaService)

	limiter := middleware.NewSubmissionRateLimiter(rdb, log, envInt("COMPLAINT_RATE_LIMIT", 5))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().UTC()})
	})

	api := r.Group("/api")

	// Public auth endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Citizen endpoints
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.PUT("/user/profile", authHandler.UpdateProfile)
		authed.GET("/services", complaintHandler.ListServices)
		authed.POST("/upload", mediaHandler.Upload)
		authed.GET("/dashboard/stats", analyticsHandler.UserDashboard)
		authed.POST("/geocode", reverseGeocode)
		authed.POST("/ai/suggest-category", aiHandler.SuggestCategory)
		authed.POST("/bot/chat", aiHandler.Chat)

		authed.GET("/complaints", complaintHandler.ListMine)
		authed.POST("/complaints", limiter.Limit(), complaintHandler.Submit)
		authed.GET("/complaints/:id", complaintHandler.GetMine)
	}

	// Admin endpoints
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(authService))
	{
		admin.GET("/dashboard/stats", analyticsHandler.AdminDashboard)
		admin.GET("/users", authHandler.ListUsers)

		admin.GET("/complaints", complaintHandler.ListAll)
		admin.POST("/complaint", complaintHandler.SubmitOnBehalf)
		admin.PUT("/complaints/:id/status", complaintHandler.UpdateStatus)

		admin.GET("/complaints/:id/resources", assignmentHandler.List)
		admin.POST("/complaints/:id/resources", assignmentHandler.Assign)
		admin.POST("/complaints/:id/resources/:resourceId", assignmentHandler.AssignOne)
		admin.DELETE("/complaints/:id/resources/:resourceId", assignmentHandler.Unassign)

		admin.GET("/resources", resourceHandler.List)
		admin.POST("/resources", resourceHandler.Create)
		admin.PUT("/resources/:id", resourceHandler.Update)
		admin.DELETE("/resources/:id", resourceHandler.Deactivate)

		admin.GET("/bot/config", aiHandler.GetConfig)
		admin.PUT("/bot/config", aiHandler.UpdateConfig)
		admin.GET("/bot/analytics", aiHandler.Analytics)
		admin.GET("/insights", aiHandler.Insights)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.WithField("port", port).Info("CityCare backend listening")
	if err := server.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// connectRedis returns nil when redis is unreachable. Analytics caching and
// rate limiting degrade gracefully without it.
func connectRedis(log *logrus.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     envStr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		return nil
	}
	return rdb
}

// reverseGeocode is the mock geocoding endpoint used by the portal frontend.
// POST /api/geocode
func reverseGeocode(c *gin.Context) {
	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":  fmt.Sprintf("123 Main Street, Downtown (Lat: %.4f, Lng: %.4f)", req.Lat, req.Lng),
		"district": "Downtown District",
	})
}

func envStr(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
