package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"campuscloud/internal/auth"
	"campuscloud/internal/cache"
	"campuscloud/internal/config"
	"campuscloud/internal/directory"
	"campuscloud/internal/handler"
	"campuscloud/internal/middleware"
	"campuscloud/internal/policy"
	"campuscloud/internal/repository/postgres"
	postgresContent "campuscloud/internal/repository/postgres/content"
	serviceContent "campuscloud/internal/service/content"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.Debug {
		// Mirror logs to rotating files in dev for post-mortem digging
		if f, err := config.SetupLogFile("logs", 5); err == nil {
			defer f.Close()
			logOutput = io.MultiWriter(os.Stdout, f)
		} else {
			log.Printf("log file setup failed, stdout only: %v", err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for identity tokens
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgresContent.NewFolderRepository(repoConfig)
	fileRepo := postgresContent.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Directory lookups (users, courses, enrollments)
	dir := directory.NewPostgresDirectory(repoConfig)

	// Initialize scope policy registry
	policyRegistry, err := policy.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize policy registry: %v", err)
	}
	logger.Info("policy registry initialized")

	// Optional listing cache; absent Redis simply means every listing is
	// recomputed from the repository
	var listings *cache.ListingCache
	if cfg.RedisAddr != "" && policyRegistry.ListingTTL() > 0 {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}

		listings = cache.NewListingCache(redisClient, policyRegistry.ListingTTL())
		logger.Info("listing cache enabled",
			"redis_addr", cfg.RedisAddr,
			"ttl", policyRegistry.ListingTTL(),
		)
	}

	// Create content services
	provisioner := serviceContent.NewRootProvisioner(folderRepo, dir, policyRegistry, logger)
	folderService := serviceContent.NewFolderService(folderRepo, fileRepo, provisioner, dir, listings, logger)
	fileService := serviceContent.NewFileService(folderRepo, fileRepo, dir, listings, logger)
	nodeService := serviceContent.NewNodeService(folderRepo, fileRepo, txManager, dir, listings, logger)
	resolver := serviceContent.NewContentResolver(folderRepo, fileRepo, provisioner, dir, listings, logger)

	// Create handlers
	contentHandler := handler.NewContentHandler(resolver, logger)
	folderHandler := handler.NewFolderHandler(folderService, nodeService, logger)
	fileHandler := handler.NewFileHandler(fileService, nodeService, logger)
	nodeHandler := handler.NewNodeHandler(nodeService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", contentHandler.HealthCheck)

	// Listing route
	mux.HandleFunc("GET /api/content", contentHandler.ListContent)

	// Creation routes
	mux.HandleFunc("POST /api/content/folders", folderHandler.CreateFolder)
	mux.HandleFunc("POST /api/content/files", fileHandler.CreateFile)

	// Node routes (shared ID namespace for folders and files)
	mux.HandleFunc("GET /api/content/nodes/{id}", nodeHandler.GetNode)
	mux.HandleFunc("PATCH /api/content/nodes/{id}", nodeHandler.UpdateNode)
	mux.HandleFunc("DELETE /api/content/nodes/{id}", nodeHandler.DeleteNode)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
