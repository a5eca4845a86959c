package app

import (
	"context"
	"fmt"
	"time"

	"smartmatch_backend/database"
	"smartmatch_backend/internal/auth"
	"smartmatch_backend/internal/config"
	"smartmatch_backend/internal/handlers"
	"smartmatch_backend/internal/logger"
	"smartmatch_backend/internal/middleware"
	"smartmatch_backend/internal/repositories"
	"smartmatch_backend/internal/routes"
	"smartmatch_backend/internal/services"
	"smartmatch_backend/internal/validator"
	"smartmatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and returns the configured
// engine. Separated from Run so integration tests can mount it over a test
// database.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// Repositories
	freelancerRepo := repositories.NewFreelancerRepository(gormDB)
	workPatternRepo := repositories.NewWorkPatternRepository(gormDB)
	endorsementRepo := repositories.NewEndorsementRepository(gormDB)
	relationshipRepo := repositories.NewSkillRelationshipRepository(gormDB)
	marketRateRepo := repositories.NewMarketRateRepository(gormDB)
	eventRepo := repositories.NewMatchingEventRepository(gormDB)

	// Background ledger worker
	ledgerWorker := workers.NewLedgerWorker(eventRepo, cfg.Matching.LedgerBuffer)
	ledgerWorker.Start(ctx)

	// Services
	gateway := services.NewCandidateGateway(
		freelancerRepo,
		workPatternRepo,
		endorsementRepo,
		relationshipRepo,
		marketRateRepo,
	)
	matchingService := services.NewMatchingService(gateway, eventRepo, ledgerWorker)
	profileService := services.NewProfileService(freelancerRepo, workPatternRepo, endorsementRepo)

	// Handlers
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	appHandlers := &handlers.AppHandlers{
		MatchingHandler: handlers.NewMatchingHandler(baseHandler, matchingService),
		ProfileHandler:  handlers.NewProfileHandler(baseHandler, profileService),
	}

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
