package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/shop-order-service/docs"
	"github.com/SergeyBogomolovv/shop-order-service/internal/app"
	"github.com/SergeyBogomolovv/shop-order-service/internal/auth"
	"github.com/SergeyBogomolovv/shop-order-service/internal/config"
	"github.com/SergeyBogomolovv/shop-order-service/internal/events"
	"github.com/SergeyBogomolovv/shop-order-service/internal/gateway"
	"github.com/SergeyBogomolovv/shop-order-service/internal/handler"
	"github.com/SergeyBogomolovv/shop-order-service/internal/postgres"
	"github.com/SergeyBogomolovv/shop-order-service/internal/repo"
	"github.com/SergeyBogomolovv/shop-order-service/internal/service"
	"github.com/SergeyBogomolovv/shop-order-service/internal/signature"
	"github.com/SergeyBogomolovv/shop-order-service/migrations"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/cache"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// @title           Shop Order Service API
// @version         1.0
// @description     Заказы и оплата через Razorpay
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	if conf.Postgres.AutoMigrate {
		panicIfErr("failed to migrate db", postgres.Migrate(ctx, db, migrations.FS))
		logger.Info("migrations applied")
	}

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	cacheBackend, cacheStarter, cacheCloser := newCache(logger, conf.Cache)
	orderCache := service.NewOrderCache(logger, cacheBackend)

	publisher := events.NewKafkaPublisher(conf.Kafka)
	razorpay := gateway.NewRazorpayClient(conf.Razorpay)
	verifier := signature.NewVerifier(conf.Razorpay.KeySecret)

	orderService := service.NewOrderService(logger, orderRepo, orderCache, publisher, conf.Order)
	paymentService := service.NewPaymentService(
		logger, txManager, orderRepo, razorpay, verifier, orderCache, publisher, conf.Razorpay.Currency,
	)

	handler.RegisterMetrics()
	httpHandler := handler.NewHTTPHandler(
		logger, auth.NewTokenVerifier(conf.Auth.JWTSecret), orderRepo, orderService, paymentService,
	)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, paymentService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(cacheStarter, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})
	app.SetClosers(publisher, cacheCloser)

	panicIfErr("failed to start app", app.Start(ctx))

	select {
	case <-ctx.Done():
	case err := <-app.Errors():
		logger.Error("shutting down after server failure", slog.Any("error", err))
	}
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
	// клиенты ожидают цены числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type startableCache interface {
	service.Cache
	app.Starter
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newCache(logger *slog.Logger, cfg config.Cache) (service.Cache, app.Starter, app.Closer) {
	var c startableCache
	var closer app.Closer = nopCloser{}
	switch cfg.Backend {
	case "redis":
		rc := cache.NewRedisCache(logger, cfg.RedisAddr, "order", cfg.TTL)
		c, closer = rc, rc
	default:
		c = cache.NewLRUCache(cfg.Capacity, cfg.TTL)
	}
	return c, c, closer
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
