package main

import (
	"context"
	"job-board-api/controllers"
	"job-board-api/infra"
	"job-board-api/loaders"
	"job-board-api/middlewares"
	"job-board-api/repositories"
	"job-board-api/resolvers"
	"job-board-api/services"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, tokenDB *gorm.DB, cfg *infra.Config, logger *slog.Logger) (*gin.Engine, error) {
	repos := repositories.NewRepositories(db)
	uow := repositories.NewUnitOfWork(db)

	var tokenRepository repositories.ITokenRepository
	if tokenDB != nil {
		tokenRepository = repositories.NewTokenRepository(tokenDB)
	}

	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := services.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(repos.Users, tokenRepository, tokens, hasher)

	resolver := resolvers.NewResolver(resolvers.Services{
		Employers:    services.NewEmployerService(repos.Employers, uow, logger),
		Jobs:         services.NewJobService(repos.Jobs, uow, logger),
		Users:        services.NewUserService(repos.Users, uow, hasher, logger),
		Applications: services.NewApplicationService(repos.Applications, uow, logger),
		Auth:         authService,
	}, middlewares.NewGate(logger))

	schema, err := resolvers.NewSchema(resolver, cfg.GraphQL.MaxDepth, cfg.GraphQL.MaxParallelism)
	if err != nil {
		return nil, err
	}

	graphqlController := controllers.NewGraphQLController(schema, logger)
	healthController := controllers.NewHealthController(db)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", healthController.Health)
	r.GET("/health", healthController.Health)

	// ローダーは呼び出し元ごとに結果が変わるため、リクエストごとに作り直す
	graphqlRouter := r.Group("/graphql", middlewares.RequestScope(authService, repos,
		loaders.WithWait(cfg.GraphQL.LoaderWait),
		loaders.WithLogger(logger),
	))
	graphqlRouter.POST("", graphqlController.Execute)

	return r, nil
}

func newLogger(cfg *infra.Config) *slog.Logger {
	level := slog.LevelDebug
	if cfg.IsProd() {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func initDB(cfg *infra.Config) (*gorm.DB, *gorm.DB) {
	db, err := infra.SetupDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	tokenDB, err := infra.SetupTokenDB(cfg.Database.TokenDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to token blacklist database: %v", err)
	}

	// インメモリのSQLiteは起動のたびに空になるため常にマイグレーションする
	if cfg.AutoMigrate || !cfg.UsesPostgres() {
		if err := infra.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		if err := infra.MigrateTokenDB(tokenDB); err != nil {
			log.Printf("Failed to migrate token blacklist database: %v", err)
		}
	}

	if cfg.SeedData {
		if err := infra.SeedDB(db, cfg.Auth.BcryptCost); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// 期限切れのブラックリストを掃除
	if removed, err := repositories.NewTokenRepository(tokenDB).CleanExpiredTokens(context.Background()); err != nil {
		log.Printf("Failed to clean expired tokens: %v", err)
	} else if removed > 0 {
		log.Printf("Removed %d expired blacklisted tokens", removed)
	}

	return db, tokenDB
}

func main() {
	infra.Initialize()

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Loaded %s", cfg)

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, tokenDB := initDB(cfg)
	r, err := setupRouter(db, tokenDB, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}
