package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"checkpoint-node/config"
	"checkpoint-node/db"
	"checkpoint-node/handlers"
	"checkpoint-node/logger"
	"checkpoint-node/repository"
	"checkpoint-node/routers"
	"checkpoint-node/service"
)

func main() {
	// Load config
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		fmt.Println("Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Logger.Sync()

	logger.Logger.Info("Starting checkpoint node...",
		zap.String("network", cfg.Network.String()),
		zap.Bool("checkpoints_enabled", cfg.CheckpointsEnabled))

	// Open the block index
	ldb, err := db.NewLevelDB(cfg.LevelDBPath)
	if err != nil {
		logger.Logger.Fatal("Failed to open leveldb", zap.Error(err))
	}
	defer ldb.Close()

	blockRepo := repository.NewBlockRepository(ldb)
	svc := service.NewService(blockRepo, cfg.Network, cfg.CheckpointsEnabled, time.Now)

	logger.Logger.Info("Loaded checkpoints",
		zap.Int("count", len(svc.Checkpoints())),
		zap.Int64("total_blocks_estimate", svc.TotalBlocksEstimate()))
	if node, ok := svc.LastCheckpoint(); ok {
		logger.Logger.Info("Block index anchored at checkpoint",
			zap.Int64("height", node.Height), zap.String("hash", node.Hash.String()))
	}

	h := handlers.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	routers.RegisterRoutes(r, h)

	// HTTP Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Logger.Info("Server stopped", zap.Error(err))
		}
	}()

	logger.Logger.Info("Server running on port", zap.Int("port", cfg.ServerPort))

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Logger.Info("Shutdown signal received, exiting...")
	srv.Close()
}
