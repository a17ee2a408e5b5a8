package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"foodbanked/internal/analytics"
	"foodbanked/internal/caching"
	"foodbanked/internal/geocoding"
	"foodbanked/internal/handlers"
	"foodbanked/internal/jobs"
	"foodbanked/internal/middleware"
	"foodbanked/internal/repositories"
	"foodbanked/internal/services"
	"foodbanked/pkg/database"
)

const version = "1.0.0"

const (
	accessTokenTTL  = 3600          // 1 hour
	refreshTokenTTL = 30 * 24 * 3600 // 30 days
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret, sessions will not survive restarts")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	exportBucket := os.Getenv("EXPORT_BUCKET")
	if exportBucket == "" {
		exportBucket = "foodbanked-exports"
	}

	storageSvc, err := services.NewStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	codeRepo := repositories.NewRegistrationCodeRepo(pool)
	foodbankRepo := repositories.NewFoodbankRepo(pool)
	orgRepo := repositories.NewOrganizationRepo(pool)
	patronRepo := repositories.NewPatronRepo(pool)
	visitRepo := repositories.NewVisitRepo(pool)
	zipcodeRepo := repositories.NewServiceZipcodeRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Geocoder
	geocoder := geocoding.NewClient(os.Getenv("GEOCODER_BASE_URL"))

	// Create services
	authSvc := services.NewAuthService(userRepo, codeRepo, cacheSvc, jwtSecret, accessTokenTTL, refreshTokenTTL)
	foodbankSvc := services.NewFoodbankService(foodbankRepo, orgRepo, geocoder)
	orgSvc := services.NewOrganizationService(orgRepo, foodbankRepo, geocoder)
	visitSvc := services.NewVisitService(visitRepo, patronRepo, foodbankRepo)
	patronSvc := services.NewPatronService(patronRepo)
	zipcodeSvc := services.NewServiceZipcodeService(zipcodeRepo)
	exportSvc := services.NewExportService(visitRepo, storageSvc, exportBucket)
	analyticsSvc := analytics.NewService(visitRepo, patronRepo, foodbankRepo, orgRepo)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, foodbankSvc)
	foodbankHandlers := handlers.NewFoodbankHandlers(foodbankSvc)
	orgHandlers := handlers.NewOrganizationHandlers(orgSvc, analyticsSvc)
	visitHandlers := handlers.NewVisitHandlers(visitSvc)
	patronHandlers := handlers.NewPatronHandlers(patronSvc)
	statsHandlers := handlers.NewStatsHandlers(analyticsSvc)
	zipcodeHandlers := handlers.NewZipcodeHandlers(zipcodeSvc)
	exportHandlers := handlers.NewExportHandlers(exportSvc)
	locationHandlers := handlers.NewLocationHandlers(foodbankSvc, orgSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc, exportBucket)

	// Background jobs
	scheduler, err := jobs.NewScheduler(foodbankSvc, orgSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedCheck)

	// Public locations directory (no auth required)
	e.GET("/locations", locationHandlers.ListLocations)
	e.GET("/organizations", locationHandlers.ListOrganizations)
	e.GET("/organizations/:slug", locationHandlers.GetOrganization)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required for signup/login)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Protected routes
	jwtConfig := echojwt.Config{
		SigningKey: []byte(jwtSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))
	protected.Use(middleware.ActorMiddleware(foodbankRepo, orgRepo))

	protected.GET("/me", authHandlers.Me)

	// Foodbank onboarding and profile
	protected.POST("/foodbank", foodbankHandlers.CreateFoodbank)

	foodbank := protected.Group("", middleware.RequireFoodbank)
	foodbank.GET("/foodbank", foodbankHandlers.GetProfile)
	foodbank.PUT("/foodbank", foodbankHandlers.UpdateProfile)

	// Visit routes
	foodbank.POST("/visits", visitHandlers.RecordVisit)
	foodbank.GET("/visits", visitHandlers.ListVisits)
	foodbank.GET("/visits/:id", visitHandlers.GetVisit)
	foodbank.PUT("/visits/:id", visitHandlers.UpdateVisit)
	foodbank.DELETE("/visits/:id", visitHandlers.DeleteVisit)

	// Patron routes
	foodbank.GET("/patrons", patronHandlers.ListPatrons)
	foodbank.POST("/patrons", patronHandlers.CreatePatron)
	foodbank.GET("/patrons/lookup", patronHandlers.LookupPatrons)
	foodbank.GET("/patrons/:id", patronHandlers.GetPatron)
	foodbank.PUT("/patrons/:id", patronHandlers.UpdatePatron)
	foodbank.DELETE("/patrons/:id", patronHandlers.DeletePatron)
	foodbank.GET("/patrons/:id/visits", visitHandlers.ListPatronVisits)

	// Stats routes
	foodbank.GET("/dashboard", statsHandlers.Dashboard)
	foodbank.GET("/stats", statsHandlers.Stats)

	// Service area routes
	foodbank.GET("/zipcodes", zipcodeHandlers.ListZipcodes)
	foodbank.POST("/zipcodes", zipcodeHandlers.CreateZipcode)
	foodbank.DELETE("/zipcodes/:id", zipcodeHandlers.DeleteZipcode)

	// Export routes
	foodbank.POST("/exports/visits", exportHandlers.ExportVisits)

	// Organization admin routes
	org := protected.Group("/organization", middleware.RequireOrganization)
	org.GET("", orgHandlers.GetOrganization)
	org.PUT("", orgHandlers.UpdateOrganization)
	org.GET("/members", orgHandlers.ListMembers)
	org.GET("/stats", orgHandlers.Stats)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Foodbanked server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
