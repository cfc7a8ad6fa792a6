package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/babadairy/backend/internal/catalog"
	"github.com/babadairy/backend/internal/config"
	"github.com/babadairy/backend/internal/httpx"
	kafkax "github.com/babadairy/backend/internal/kafka"
	"github.com/babadairy/backend/internal/logx"
	"github.com/babadairy/backend/internal/orders"
	"github.com/babadairy/backend/internal/postgres"
	"github.com/babadairy/backend/internal/redisx"
	"github.com/babadairy/backend/internal/reviews"
	"github.com/babadairy/backend/internal/settings"
	"github.com/babadairy/backend/internal/storage"
	"github.com/babadairy/backend/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger, err := logx.New(cfg.Env, cfg.ServiceName)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, logger)
	prod.Start(ctx)

	// Repos & services
	productRepo := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	userRepo := &users.Repo{DB: db}
	reviewRepo := &reviews.Repo{DB: db}
	settingsRepo := &settings.Repo{DB: db}

	orderSvc := &orders.Service{
		Store: orderRepo,
		Inventory: &orders.InventoryAdjuster{
			Products: productRepo,
			Log:      logger,
		},
		Producer:    prod,
		ServiceName: cfg.ServiceName,
		Log:         logger,
	}

	var uploader *storage.Uploader
	if cfg.Storage.AccessKey != "" {
		uploader, err = storage.NewUploader(cfg.Storage)
		if err != nil {
			logger.Fatal("storage init failed", zap.Error(err))
		}
	} else {
		logger.Warn("storage credentials not set, uploads disabled")
	}

	// Router & handlers
	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Svc: orderSvc, Redis: rdb, Log: logger}).Register(router)
	(&httpx.ProductsHandler{Repo: productRepo, Log: logger}).Register(router)
	(&httpx.UsersHandler{Repo: userRepo, Log: logger}).Register(router)
	(&httpx.ReviewsHandler{Repo: reviewRepo, Catalog: productRepo, Log: logger}).Register(router)
	(&httpx.SettingsHandler{Repo: settingsRepo, Redis: rdb, Log: logger}).Register(router)
	(&httpx.UploadHandler{Uploader: uploader, Log: logger}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
	prod.Close() // flush remaining events
	cancel()
	prod.WaitClosed()
}
