package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wallet-sentinel.backend/internal/config"
	"wallet-sentinel.backend/internal/domain/entities"
	"wallet-sentinel.backend/internal/infrastructure/blockchain"
	"wallet-sentinel.backend/internal/infrastructure/jobs"
	"wallet-sentinel.backend/internal/infrastructure/models"
	"wallet-sentinel.backend/internal/infrastructure/repositories"
	"wallet-sentinel.backend/internal/interfaces/http/handlers"
	"wallet-sentinel.backend/internal/interfaces/http/middleware"
	"wallet-sentinel.backend/internal/usecases"
	"wallet-sentinel.backend/pkg/logger"
	"wallet-sentinel.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&models.Wallet{},
		&models.Transaction{},
		&models.AlertRule{},
		&models.Alert{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	ruleRepo := repositories.NewAlertRuleRepository(db)
	alertRepo := repositories.NewAlertRepository(db)

	// Initialize the adapter registry; adapters are created lazily per chain
	registry := blockchain.NewRegistry(func(chain entities.ChainID) (blockchain.Adapter, error) {
		switch chain {
		case entities.ChainEthereum:
			// Execution nodes expose no account-history RPC; transaction
			// fetching needs an indexer wired in via TxFetchFunc.
			return blockchain.NewEVMAdapter(chain, cfg.Blockchain.EthereumRPC, nil)
		case entities.ChainSolana:
			return blockchain.NewSolanaAdapter(cfg.Blockchain.SolanaRPC), nil
		}
		return nil, fmt.Errorf("no adapter for chain %s", chain)
	})

	// Initialize the monitoring pipeline
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	normalizer := usecases.NewTransactionNormalizer()
	scorer := usecases.NewAnomalyScorer()
	ruleEngine := usecases.NewRuleEngine(ctx, ruleRepo, scorer)
	coordinator := usecases.NewIngestionCoordinator(
		registry, normalizer, scorer, ruleEngine,
		txRepo, walletRepo, alertRepo,
		cfg.Monitor.TxFetchLimit,
	)
	balanceCache := redis.NewBalanceCache(cfg.Monitor.BalanceCacheTTL)

	// Initialize usecases
	walletUsecase := usecases.NewWalletUsecase(walletRepo, alertRepo, registry, ruleEngine, balanceCache)
	alertUsecase := usecases.NewAlertUsecase(alertRepo, ruleRepo, ruleEngine)
	analysisUsecase := usecases.NewAnalysisUsecase(txRepo, alertRepo)

	// Initialize handlers
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	transactionHandler := handlers.NewTransactionHandler(txRepo, coordinator, analysisUsecase)
	alertHandler := handlers.NewAlertHandler(alertUsecase, analysisUsecase)

	// Start background sync
	if cfg.Monitor.SyncEnabled {
		syncJob := jobs.NewWalletSyncJob(walletRepo, coordinator, cfg.Monitor.SyncInterval)
		go syncJob.Start(ctx)
		defer syncJob.Stop()
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	registerAPIV1Routes(router, routeDeps{
		walletHandler:      walletHandler,
		transactionHandler: transactionHandler,
		alertHandler:       alertHandler,
	})

	logger.Info(ctx, "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(router, cfg.Server.Port)
}
