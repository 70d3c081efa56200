package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/feed"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"

	catalogH "github.com/fekuna/omnipos-storefront-service/internal/catalog/handler"
	catalogRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/repository"
	catalogUCPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/usecase"

	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	orderListenerPkg "github.com/fekuna/omnipos-storefront-service/internal/order/listener"
	orderRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront-service/internal/order/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	loc, err := time.LoadLocation(cfg.Storefront.Timezone)
	if err != nil {
		appLogger.Fatal("Unknown store timezone", zap.String("timezone", cfg.Storefront.Timezone), zap.Error(err))
	}

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: seconds(cfg.Postgres.ConnMaxLifetime),
		ConnMaxIdleTime: seconds(cfg.Postgres.ConnMaxIdleTime),
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProducer.Close()

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	feedGroup := cfg.Kafka.FeedGroup + "-" + host
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: feedGroup,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", feedGroup),
	)

	// 7. Initialize UseCases
	hub := feed.NewHub(cfg.Storefront.FeedSubscriberSize)
	if cfg.Storefront.CartSealKey == "" {
		appLogger.Warn("CART_SEAL_KEY not set, carts only check out on this replica until restart")
	}
	sealer := cart.NewSealer([]byte(cfg.Storefront.CartSealKey))

	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, redisClient, appLogger, catalogUCPkg.Options{
		Zones:    pricing.DefaultZones,
		Location: loc,
		CacheTTL: seconds(cfg.Storefront.CatalogCacheTTL),
		Sealer:   sealer,
	})
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, catalogUC, redisClient, kafkaProducer, hub, appLogger, orderUCPkg.Options{
		Zones:             pricing.DefaultZones,
		Location:          loc,
		IdempotencyWindow: seconds(cfg.Storefront.IdempotencyWindow),
		IdempotencyTTL:    seconds(cfg.Storefront.IdempotencyTTL),
		ListLimit:         cfg.Storefront.OrderListLimit,
		Sealer:            sealer,
	})

	// 8. Start Listener
	feedListener := orderListenerPkg.NewFeedListener(kafkaConsumer, orderUC, catalogUC, hub, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feedListener.Start(ctx)

	// 9. Initialize Handlers
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger, time.Now)

	// 10. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.LoggingInterceptor(appLogger),
			middleware.ContextInterceptor(),
		),
		grpc.StreamInterceptor(middleware.StreamContextInterceptor()),
	)

	storefrontv1.RegisterCatalogServiceServer(grpcServer, catalogHandler)
	storefrontv1.RegisterCartServiceServer(grpcServer, catalogHandler)
	storefrontv1.RegisterOrderServiceServer(grpcServer, orderHandler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		// WatchOrders streams stay open until the client leaves.
		grpcServer.Stop()
	}
	appLogger.Info("Server stopped")
}
